package cms

import (
	"time"

	"github.com/ishanichuri/portfolio/internal/projects/domain"
)

// Action is an event applied to State by Reduce.
type Action interface{ action() }

type (
	LoadStarted struct{}
	Loaded      struct{ Projects []domain.ProjectRecord }
	LoadFailed  struct{ Message string }

	// NewForm opens a blank create form. Reset does the same after a save
	// and returns to Idle.
	NewForm struct {
		ProjectID string
		Now       time.Time
	}
	Reset struct {
		ProjectID string
		Now       time.Time
	}
	Edit       struct{ ProjectID string }
	FormLoaded struct{ Input domain.ProjectInput }

	SetField struct {
		Field Field
		Value string
	}
	SetTagInput struct{ Value string }

	SaveStarted   struct{}
	SaveSucceeded struct{ Notice string }
	SaveFailed    struct{ Message string }

	Notice struct{ Message string }

	UploadStarted  struct{}
	UploadFinished struct{}
	ImageAttached  struct{ Image domain.ProjectImage }
	ImageRemoved   struct{ Key string }
)

func (LoadStarted) action() {}
func (Loaded) action() {}
func (LoadFailed) action() {}
func (NewForm) action() {}
func (Reset) action() {}
func (Edit) action() {}
func (FormLoaded) action() {}
func (SetField) action() {}
func (SetTagInput) action() {}
func (SaveStarted) action() {}
func (SaveSucceeded) action() {}
func (SaveFailed) action() {}
func (Notice) action() {}
func (UploadStarted) action() {}
func (UploadFinished) action() {}
func (ImageAttached) action() {}
func (ImageRemoved) action() {}

// Reduce returns the state after a. It never mutates s.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case LoadStarted:
		s.Loading = true
	case Loaded:
		s.Projects = append([]domain.ProjectRecord(nil), a.Projects...)
		s.Loading = false
		s.Notice = ""
	case LoadFailed:
		s.Loading = false
		s.Notice = a.Message
	case NewForm:
		s.Form = BlankForm(a.ProjectID, a.Now)
		s.TagInput = ""
		s.Phase = Creating
	case Reset:
		s.Form = BlankForm(a.ProjectID, a.Now)
		s.TagInput = ""
		s.Phase = Idle
	case Edit:
		p, ok := s.Find(a.ProjectID)
		if !ok {
			s.Notice = "Project not found"
			break
		}
		s.Form = copyInput(p.Input())
		if s.Form.Extra == nil {
			s.Form.Extra = map[string]any{}
		}
		s.TagInput = domain.JoinTags(p.Tags)
		s.Phase = Editing
	case FormLoaded:
		s.Form = copyInput(a.Input)
		if s.Form.Extra == nil {
			s.Form.Extra = map[string]any{}
		}
		s.TagInput = domain.JoinTags(a.Input.Tags)
		s.Phase = s.formPhase()
	case SetField:
		s.Form = setField(copyInput(s.Form), a.Field, a.Value)
		if s.Phase != Saving {
			s.Phase = s.formPhase()
		}
	case SetTagInput:
		s.TagInput = a.Value
		if s.Phase != Saving {
			s.Phase = s.formPhase()
		}
	case SaveStarted:
		s.Phase = Saving
	case SaveSucceeded:
		s.Notice = a.Notice
	case SaveFailed:
		s.Notice = a.Message
		s.Phase = s.formPhase()
	case Notice:
		s.Notice = a.Message
	case UploadStarted:
		s.Uploading = true
	case UploadFinished:
		s.Uploading = false
	case ImageAttached:
		s.Form = copyInput(s.Form)
		s.Form.Images = append(s.Form.Images, a.Image)
	case ImageRemoved:
		s.Form = copyInput(s.Form)
		kept := s.Form.Images[:0]
		for _, img := range s.Form.Images {
			if img.Key != a.Key {
				kept = append(kept, img)
			}
		}
		s.Form.Images = kept
	}
	return s
}

// formPhase is the phase implied by the form while the user is typing.
func (s State) formPhase() Phase {
	if s.Selected() {
		return Editing
	}
	return Creating
}

func copyInput(in domain.ProjectInput) domain.ProjectInput {
	in.Tags = domain.CopyList(in.Tags)
	in.Images = domain.CopyList(in.Images)
	return in
}
