package cms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ishanichuri/portfolio/internal/client"
	"github.com/ishanichuri/portfolio/internal/logging"
	"github.com/ishanichuri/portfolio/internal/projects/domain"
)

// API is the part of the project client the dashboard drives.
type API interface {
	ListProjects(ctx context.Context) ([]domain.ProjectRecord, error)
	CreateProject(ctx context.Context, in domain.ProjectInput) (*domain.ProjectRecord, error)
	UpdateProject(ctx context.Context, projectID string, patch domain.ProjectPatch) (*domain.ProjectRecord, error)
	DeleteProject(ctx context.Context, projectID string) error
	SetProjectStatus(ctx context.Context, projectID string, status domain.Status) (*domain.ProjectRecord, error)
	UploadImage(ctx context.Context, fileName, contentType string, body io.Reader) (*client.UploadedImage, error)
}

var (
	ErrNotLoaded   = errors.New("project not loaded")
	ErrUnpublished = errors.New("project cannot be published")
)

// Dashboard applies user intents against the API and folds the results into
// State. It is driven by a single caller.
type Dashboard struct {
	api   API
	state State
	now   func() time.Time
}

func NewDashboard(api API) *Dashboard {
	d := &Dashboard{api: api, now: time.Now}
	d.state = Reduce(State{}, Reset{ProjectID: domain.NewProjectID(d.now()), Now: d.now()})
	return d
}

// WithClock replaces the time source used for new form dates and ids.
func (d *Dashboard) WithClock(now func() time.Time) *Dashboard {
	d.now = now
	d.state = Reduce(d.state, Reset{ProjectID: domain.NewProjectID(now()), Now: now()})
	return d
}

func (d *Dashboard) State() State { return d.state }

func (d *Dashboard) dispatch(a Action) { d.state = Reduce(d.state, a) }

func (d *Dashboard) fresh() (string, time.Time) {
	now := d.now()
	return domain.NewProjectID(now), now
}

// Refresh reloads every project. The notice is cleared on success and carries
// the failure otherwise.
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.dispatch(LoadStarted{})
	items, err := d.api.ListProjects(ctx)
	if err != nil {
		d.dispatch(LoadFailed{Message: noticeFor(err)})
		return err
	}
	d.dispatch(Loaded{Projects: items})
	return nil
}

// reload refreshes after a successful write. The write already happened, so a
// failed reload is only logged.
func (d *Dashboard) reload(ctx context.Context) {
	if err := d.Refresh(ctx); err != nil {
		logging.Op(ctx, "cms_reload").WithError(err).Warn("reload after write failed")
	}
}

func (d *Dashboard) New() {
	id, now := d.fresh()
	d.dispatch(NewForm{ProjectID: id, Now: now})
}

func (d *Dashboard) Edit(projectID string) error {
	d.dispatch(Edit{ProjectID: projectID})
	if d.state.Phase != Editing || d.state.Form.ProjectID != projectID {
		return fmt.Errorf("%w: %s", ErrNotLoaded, projectID)
	}
	return nil
}

func (d *Dashboard) SetField(f Field, value string) { d.dispatch(SetField{Field: f, Value: value}) }

func (d *Dashboard) SetTagInput(value string) { d.dispatch(SetTagInput{Value: value}) }

// Load replaces the whole form, e.g. with a project read from a file.
func (d *Dashboard) Load(in domain.ProjectInput) { d.dispatch(FormLoaded{Input: in}) }

// Save creates or updates the project in the form, then reloads the list and
// resets the form. Publish checks run only when the form targets published;
// a failed check makes no network call.
func (d *Dashboard) Save(ctx context.Context) error {
	log := logging.Op(ctx, "cms_save")
	tags := domain.ParseTags(d.state.TagInput)
	form := d.state.Form
	if domain.RequiresPublishCheck(form.Status) {
		if msg := domain.CheckPublishable(tags, form.Category); msg != "" {
			d.dispatch(Notice{Message: msg})
			return fmt.Errorf("%w: %s", ErrUnpublished, msg)
		}
	}

	updating := d.state.Selected()
	d.dispatch(SaveStarted{})

	payload := copyInput(form)
	payload.Tags = tags
	var (
		err    error
		notice string
	)
	if updating {
		_, err = d.api.UpdateProject(ctx, payload.ProjectID, domain.PatchFrom(payload))
		notice = "Project updated"
	} else {
		_, err = d.api.CreateProject(ctx, payload)
		notice = "Project created"
	}
	if err != nil {
		log.WithError(err).Debug("save failed")
		d.dispatch(SaveFailed{Message: noticeFor(err)})
		return err
	}

	d.reload(ctx)
	id, now := d.fresh()
	d.dispatch(Reset{ProjectID: id, Now: now})
	d.dispatch(SaveSucceeded{Notice: notice})
	return nil
}

// SetStatus moves a loaded project to status. Publishing checks the loaded
// record first.
func (d *Dashboard) SetStatus(ctx context.Context, projectID string, status domain.Status) error {
	target, ok := d.state.Find(projectID)
	if !ok {
		d.dispatch(Notice{Message: "Project not found"})
		return fmt.Errorf("%w: %s", ErrNotLoaded, projectID)
	}
	if domain.RequiresPublishCheck(status) {
		if msg := domain.CheckPublishable(target.Tags, target.Category); msg != "" {
			d.dispatch(Notice{Message: msg})
			return fmt.Errorf("%w: %s", ErrUnpublished, msg)
		}
	}

	if _, err := d.api.SetProjectStatus(ctx, projectID, status); err != nil {
		d.dispatch(Notice{Message: noticeFor(err)})
		return err
	}
	d.reload(ctx)
	d.dispatch(Notice{Message: "Project set to " + string(status)})
	return nil
}

// Toggle publishes a draft or unpublishes a published project.
func (d *Dashboard) Toggle(ctx context.Context, projectID string) error {
	target, ok := d.state.Find(projectID)
	if !ok {
		d.dispatch(Notice{Message: "Project not found"})
		return fmt.Errorf("%w: %s", ErrNotLoaded, projectID)
	}
	return d.SetStatus(ctx, projectID, ToggleTarget(target.Status))
}

func (d *Dashboard) Delete(ctx context.Context, projectID string) error {
	if err := d.api.DeleteProject(ctx, projectID); err != nil {
		d.dispatch(Notice{Message: noticeFor(err)})
		return err
	}
	d.reload(ctx)
	d.dispatch(Notice{Message: "Project deleted"})
	if d.state.Form.ProjectID == projectID {
		id, now := d.fresh()
		d.dispatch(Reset{ProjectID: id, Now: now})
	}
	return nil
}

// AttachImage uploads immediately and appends the image to the form.
func (d *Dashboard) AttachImage(ctx context.Context, fileName, contentType string, body io.Reader) error {
	d.dispatch(UploadStarted{})
	defer d.dispatch(UploadFinished{})

	out, err := d.api.UploadImage(ctx, fileName, contentType, body)
	if err != nil {
		d.dispatch(Notice{Message: noticeFor(err)})
		return err
	}
	alt := d.state.Form.Title
	if alt == "" {
		alt = fileName
	}
	d.dispatch(ImageAttached{Image: domain.ProjectImage{Key: out.Key, URL: out.PublicURL, Alt: alt}})
	d.dispatch(Notice{Message: "Image added"})
	return nil
}

func (d *Dashboard) RemoveImage(key string) { d.dispatch(ImageRemoved{Key: key}) }

func noticeFor(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Notice()
	}
	return err.Error()
}
