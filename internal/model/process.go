package model

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Process status
const (
	ProcessStatusDraft     = "draft"
	ProcessStatusPublished = "published"
)

// Round type
const (
	RoundTypeForm        = "form"
	RoundTypeInstruction = "instruction"
	RoundTypeHybrid      = "hybrid"
)

// Field sub type
const (
	FieldShortText      = "shortText"
	FieldLongText       = "longText"
	FieldFileUpload     = "fileUpload"
	FieldSingleChoice   = "singleChoice"
	FieldMultipleChoice = "multipleChoice"
	FieldCodeEditor     = "codeEditor"
	FieldAudioResponse  = "audioResponse"
)

var (
	roundTypes = []string{RoundTypeForm, RoundTypeInstruction, RoundTypeHybrid}
	fieldTypes = []string{
		FieldShortText, FieldLongText, FieldFileUpload, FieldSingleChoice,
		FieldMultipleChoice, FieldCodeEditor, FieldAudioResponse,
	}
)

// IntroVideo is the "watch before you begin" configuration of a process or a round.
type IntroVideo struct {
	Enabled          bool   `json:"enabled" yaml:"enabled"`
	VideoURL         string `json:"videoUrl,omitempty" yaml:"videoUrl"`
	VideoTitle       string `json:"videoTitle,omitempty" yaml:"videoTitle"`
	VideoDescription string `json:"videoDescription,omitempty" yaml:"videoDescription"`
	IsMandatory      bool   `json:"isMandatory" yaml:"isMandatory"`
	VideoDuration    int    `json:"videoDuration,omitempty" yaml:"videoDuration"`
}

// Process is a hiring pipeline made of ordered rounds.
type Process struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title       string     `gorm:"type:text;not null" json:"title" yaml:"title"`
	Description string     `gorm:"type:text" json:"description" yaml:"description"`
	Status      string     `gorm:"type:text;not null;default:'draft'" json:"status" yaml:"status"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid" json:"createdBy,omitempty" yaml:"-"`
	ClonedFrom  *uuid.UUID `gorm:"type:uuid" json:"clonedFrom,omitempty" yaml:"-"`

	WatchBeforeYouBegin IntroVideo `gorm:"embedded;embeddedPrefix:intro_" json:"watchBeforeYouBegin" yaml:"watchBeforeYouBegin"`

	Rounds []Round `gorm:"foreignKey:ProcessID;constraint:OnDelete:CASCADE" json:"rounds" yaml:"rounds"`

	CreatedAt time.Time `json:"createdAt" yaml:"-"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"-"`
}

// Round is one stage of a process. Order defines traversal, not the slice position.
type Round struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProcessID   uuid.UUID `gorm:"type:uuid;not null;index" json:"processId" yaml:"-"`
	Title       string    `gorm:"type:text;not null" json:"title" yaml:"title"`
	Type        string    `gorm:"type:text;not null" json:"type" yaml:"type"`
	Order       int       `gorm:"column:sort_order;not null" json:"order" yaml:"order"`
	Instruction string    `gorm:"type:text" json:"instruction,omitempty" yaml:"instruction"`

	IntroVideo IntroVideo `gorm:"embedded;embeddedPrefix:intro_" json:"watchBeforeYouBegin" yaml:"watchBeforeYouBegin"`

	Fields []Field `gorm:"foreignKey:RoundID;constraint:OnDelete:CASCADE" json:"fields" yaml:"fields"`
}

// Field is a single question of a form round.
type Field struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RoundID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"roundId" yaml:"-"`
	Question    string         `gorm:"type:text;not null" json:"question" yaml:"question"`
	SubType     string         `gorm:"type:text;not null" json:"subType" yaml:"subType"`
	Options     pq.StringArray `gorm:"type:text[]" json:"options" yaml:"options"`
	Description string         `gorm:"type:text" json:"description,omitempty" yaml:"description"`
	Required    bool           `json:"required" yaml:"required"`
	Position    int            `json:"position" yaml:"position"`
}

// IsChoice reports whether the field needs a list of options.
func (f *Field) IsChoice() bool {
	return f.SubType == FieldSingleChoice || f.SubType == FieldMultipleChoice
}

// Validate checks the field on its own.
func (f *Field) Validate() error {
	if strings.TrimSpace(f.Question) == "" {
		return fmt.Errorf("Question is required")
	}
	if f.SubType == "" {
		return fmt.Errorf("SubType is required")
	}
	if !contains(fieldTypes, f.SubType) {
		return fmt.Errorf("Invalid subType: %s", f.SubType)
	}
	if f.IsChoice() {
		filled := 0
		for _, o := range f.Options {
			if strings.TrimSpace(o) != "" {
				filled++
			}
		}
		if filled < 2 {
			return fmt.Errorf("At least 2 options are required for choice fields")
		}
	}
	return nil
}

// Validate checks the process definition and every round and field in it.
func (p *Process) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("Title is required")
	}
	if p.Status != ProcessStatusDraft && p.Status != ProcessStatusPublished {
		return fmt.Errorf("Invalid status: %s", p.Status)
	}
	seenOrder := map[int]bool{}
	for i := range p.Rounds {
		r := &p.Rounds[i]
		if strings.TrimSpace(r.Title) == "" {
			return fmt.Errorf("round %d: title is required", i+1)
		}
		if !contains(roundTypes, r.Type) {
			return fmt.Errorf("round %q: invalid type %q", r.Title, r.Type)
		}
		if seenOrder[r.Order] {
			return fmt.Errorf("round %q: duplicate order %d", r.Title, r.Order)
		}
		seenOrder[r.Order] = true
		for j := range r.Fields {
			if err := r.Fields[j].Validate(); err != nil {
				return fmt.Errorf("round %q field %d: %w", r.Title, j+1, err)
			}
		}
	}
	return nil
}

// SortRounds orders rounds by Order and their fields by Position.
func (p *Process) SortRounds() {
	sort.SliceStable(p.Rounds, func(i, j int) bool {
		return p.Rounds[i].Order < p.Rounds[j].Order
	})
	for i := range p.Rounds {
		fields := p.Rounds[i].Fields
		sort.SliceStable(fields, func(a, b int) bool {
			return fields[a].Position < fields[b].Position
		})
	}
}

// RoundIndex returns the position of roundID in the rounds slice, or -1.
// Call SortRounds first to get the canonical index.
func (p *Process) RoundIndex(roundID string) int {
	for i := range p.Rounds {
		if p.Rounds[i].ID.String() == roundID {
			return i
		}
	}
	return -1
}

// Clone returns a draft copy of the process with fresh ids.
func (p *Process) Clone(title string) Process {
	if strings.TrimSpace(title) == "" {
		title = p.Title + " (Copy)"
	}
	from := p.ID
	cp := Process{
		ID:                  uuid.New(),
		Title:               title,
		Description:         p.Description,
		Status:              ProcessStatusDraft,
		CreatedBy:           p.CreatedBy,
		ClonedFrom:          &from,
		WatchBeforeYouBegin: p.WatchBeforeYouBegin,
	}
	for _, r := range p.Rounds {
		nr := r
		nr.ID = uuid.New()
		nr.ProcessID = cp.ID
		nr.Fields = make([]Field, 0, len(r.Fields))
		for _, f := range r.Fields {
			nf := f
			nf.ID = uuid.New()
			nf.RoundID = nr.ID
			nf.Options = append(pq.StringArray(nil), f.Options...)
			nr.Fields = append(nr.Fields, nf)
		}
		cp.Rounds = append(cp.Rounds, nr)
	}
	return cp
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
