package model

import "github.com/google/uuid"

// CandidateLoginResponse is returned after a successful candidate login or registration
type CandidateLoginResponse struct {
	Candidate   Candidate `json:"candidate"`
	AccessToken string    `json:"access_token"`
	Message     string    `json:"message,omitempty"`
}

// AdminLoginResponse is returned after a successful admin login
type AdminLoginResponse struct {
	Admin       Admin  `json:"admin"`
	AccessToken string `json:"access_token"`
}

// Principal is the authenticated caller carried through a request.
type Principal struct {
	ID   uuid.UUID `json:"id"`
	Role string    `json:"role"`
}
