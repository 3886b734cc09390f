package progression

import (
	"encoding/json"
	"strconv"
	"strings"

	"actualize-backend/internal/apperror"
	"actualize-backend/internal/model"
)

// Action kinds
const (
	KindSubmit   = "submit"
	KindAutosave = "autosave"
	KindBlock    = "blockCandidate"
	KindUnblock  = "unblockCandidate"
	KindStatus   = "status"
)

const (
	maxBlockHours     = 720
	defaultBlockHours = 24
)

// DefaultBlockReason is used when an admin blocks without a reason.
const DefaultBlockReason = "Missed self-defined timeline deadline"

// Action is a request payload that has been decoded and validated at the boundary.
type Action interface {
	Kind() string
	Validate() error
}

// SubmitAction carries a full set of answers for a round.
type SubmitAction struct {
	Answers []model.Answer `json:"answers"`
}

// AutosaveAction carries a partial set of answers for a round.
type AutosaveAction struct {
	Answers []model.Answer `json:"answers"`
}

// BlockAction suspends the candidate behind an application.
type BlockAction struct {
	DurationHours float64 `json:"blockDurationHours"`
	Reason        string  `json:"reason"`
}

// UnblockAction lifts a suspension.
type UnblockAction struct{}

// StatusAction is an admin override of the application status.
type StatusAction struct {
	Status string `json:"status"`
}

func (SubmitAction) Kind() string   { return KindSubmit }
func (AutosaveAction) Kind() string { return KindAutosave }
func (BlockAction) Kind() string    { return KindBlock }
func (UnblockAction) Kind() string  { return KindUnblock }
func (StatusAction) Kind() string   { return KindStatus }

func (a SubmitAction) Validate() error { return validateAnswers(a.Answers) }

func (a AutosaveAction) Validate() error {
	if len(a.Answers) == 0 {
		return apperror.Validation("answers must not be empty")
	}
	return validateAnswers(a.Answers)
}

func (a BlockAction) Validate() error {
	if a.DurationHours <= 0 || a.DurationHours > maxBlockHours {
		return apperror.Validation("blockDurationHours must be greater than 0 and at most 720")
	}
	return nil
}

func (UnblockAction) Validate() error { return nil }

func (a StatusAction) Validate() error {
	for _, s := range model.ApplicationStatuses {
		if a.Status == s {
			return nil
		}
	}
	return apperror.Validation("No valid action provided")
}

func validateAnswers(answers []model.Answer) error {
	for i, a := range answers {
		if strings.TrimSpace(a.FieldID) == "" {
			return apperror.Validation("answers[" + strconv.Itoa(i) + "].fieldId is required")
		}
	}
	return nil
}

type adminActionBody struct {
	Action             string   `json:"action"`
	BlockDurationHours *float64 `json:"blockDurationHours"`
	Reason             string   `json:"reason"`
	Status             string   `json:"status"`
}

// DecodeAdminAction turns the body of an admin application PATCH into an Action.
// A body with a status but no action is read as a status update.
func DecodeAdminAction(raw []byte) (Action, error) {
	var body adminActionBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, apperror.NewError(apperror.CodeValidation, "Invalid request body", err)
	}

	var action Action
	switch {
	case body.Action == KindBlock:
		hours := float64(defaultBlockHours)
		if body.BlockDurationHours != nil {
			hours = *body.BlockDurationHours
		}
		action = BlockAction{DurationHours: hours, Reason: strings.TrimSpace(body.Reason)}
	case body.Action == KindUnblock:
		action = UnblockAction{}
	case body.Action == KindStatus || (body.Action == "" && body.Status != ""):
		action = StatusAction{Status: body.Status}
	default:
		return nil, apperror.Validation("No valid action provided")
	}

	if err := action.Validate(); err != nil {
		return nil, err
	}
	return action, nil
}
