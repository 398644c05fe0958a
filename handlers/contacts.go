package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/danielgtaylor/huma/v2"

	"github.com/RDP08/agenda.capas/contact"
	ds "github.com/RDP08/agenda.capas/datastores"
)

type Contacts struct {
	Store        ds.ContactsStore
	ErrorHandler func(context.Context, error)
	OnCreated    func(context.Context, *ds.Contact)

	// mu serializes the load/append/save sequence of create.
	mu sync.Mutex
}

type ContactModel struct {
	ID ds.ContactID `json:"id" readOnly:"true"`

	FirstName string `json:"firstName" example:"Juan"`
	LastName  string `json:"lastName"  example:"Perez"`
	Phone     string `json:"phone"     example:"8091234567" doc:"digits only"`
}

func (h *Contacts) RegisterList(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/contacts",
		handlerWithErrorHandler(h.list, h.ErrorHandler),
		opID("list-contacts", "List contacts"),
		opErrors(http.StatusInternalServerError),
	)
}

type ContactsListOutput struct {
	Body []ContactModel
}

func (h *Contacts) list(ctx context.Context, _ *struct{}) (*ContactsListOutput, error) {
	contacts, err := h.Store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	body := make([]ContactModel, 0, len(contacts))
	for _, c := range contacts {
		body = append(body, ContactModel{
			ID:        c.ID,
			FirstName: c.FirstName,
			LastName:  c.LastName,
			Phone:     c.Phone,
		})
	}

	return &ContactsListOutput{Body: body}, nil
}

func (h *Contacts) RegisterCreate(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, "/contacts",
		handlerWithErrorHandler(h.create, h.ErrorHandler),
		opID("create-contact", "Create a contact"),
		opStatus(http.StatusCreated),
		opErrors(http.StatusBadRequest, http.StatusInternalServerError),
	)
}

type ContactsCreateInput struct {
	Body struct {
		FirstName string `json:"firstName" example:"Juan"         doc:"letters, spaces, hyphens and apostrophes, 2 to 50 characters"`
		LastName  string `json:"lastName"  example:"Perez"        doc:"letters, spaces, hyphens and apostrophes, 2 to 50 characters"`
		Phone     string `json:"phone"     example:"809-123-4567" doc:"7 to 15 digits, separators are removed"`
	}
}

type ContactsCreateOutput struct {
	Body struct {
		Message string `json:"message" example:"contact created"`
	}
}

func (h *Contacts) create(ctx context.Context, input *ContactsCreateInput) (*ContactsCreateOutput, error) {
	in := contact.Normalize(contact.Input{
		FirstName: input.Body.FirstName,
		LastName:  input.Body.LastName,
		Phone:     input.Body.Phone,
	})

	var verr *contact.ValidationError
	err := contact.Validate(in)
	switch {
	case errors.As(err, &verr):
		errs := make([]error, 0, len(verr.Violations))
		for _, v := range verr.Violations {
			errs = append(errs, errors.New(v))
		}
		return nil, huma.Error400BadRequest("validation failed", errs...)
	case err != nil:
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	contacts, err := h.Store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	c := &ds.Contact{
		ID:        ds.NewContactID(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
	}
	err = h.Store.SaveAll(ctx, append(contacts, c))
	if err != nil {
		return nil, err
	}

	if h.OnCreated != nil {
		h.OnCreated(ctx, c)
	}

	resp := &ContactsCreateOutput{}
	resp.Body.Message = "contact created"
	return resp, nil
}
