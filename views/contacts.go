package views

import (
	"context"
	"strings"
	"sync"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client"
)

// ContactKind is the relationship category offered by the form.
type ContactKind string

const (
	ContactFamily    ContactKind = "familia"
	ContactFriend    ContactKind = "amigo"
	ContactCaregiver ContactKind = "cuidador"
	ContactDoctor    ContactKind = "medico"
	ContactOther     ContactKind = "outro"
)

// Contact form messages.
const (
	MsgContactNameRequired  = "Por favor, preencha o nome do contato."
	MsgContactPhoneRequired = "Por favor, preencha o telefone do contato."
)

// ContactExtras are form fields the backend does not store. They are kept on
// screen and never sent.
type ContactExtras struct {
	Kind     ContactKind
	Relation string
	Notes    string
}

// ContactForm is the content of the new/edit contact screen.
type ContactForm struct {
	Name      string
	Phone     string
	Emergency bool
	Photo     *client.Attachment

	Transient ContactExtras
}

// NewContactForm returns the defaults of an empty form.
func NewContactForm() ContactForm {
	return ContactForm{Transient: ContactExtras{Kind: ContactFamily}}
}

// Input validates the form and builds the request. Transient fields are dropped.
func (f ContactForm) Input(op string) (client.ContactInput, error) {
	if strings.TrimSpace(f.Name) == "" {
		return client.ContactInput{}, client.NewValidationError(op, MsgContactNameRequired)
	}
	if strings.TrimSpace(f.Phone) == "" {
		return client.ContactInput{}, client.NewValidationError(op, MsgContactPhoneRequired)
	}
	return client.ContactInput{
		Name:      strings.TrimSpace(f.Name),
		Phone:     strings.TrimSpace(f.Phone),
		Emergency: f.Emergency,
		Photo:     f.Photo,
	}, nil
}

// ContactBook is the list of contacts.
type ContactBook struct {
	status

	api ContactAPI

	mu    sync.Mutex
	items []client.Contact
}

// NewContactBook returns an empty book.
func NewContactBook(api ContactAPI) *ContactBook { return &ContactBook{api: api} }

// Load replaces the list with the backend's.
func (c *ContactBook) Load(ctx context.Context) error {
	items, err := c.api.ListContacts(ctx)
	if err != nil {
		return c.set(err, "Erro ao carregar contatos.")
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return c.set(nil, "")
}

// Items returns the loaded contacts in backend order.
func (c *ContactBook) Items() []client.Contact {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]client.Contact{}, c.items...)
}

// Emergency returns the emergency contacts in list order.
func (c *ContactBook) Emergency() []client.Contact {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := []client.Contact{}
	for _, ct := range c.items {
		if ct.Emergency {
			out = append(out, ct)
		}
	}
	return out
}

// Create validates form, stores the contact and appends it. The result is nil
// when the backend accepted the contact without returning it.
func (c *ContactBook) Create(ctx context.Context, form ContactForm) (*client.Contact, error) {
	in, err := form.Input("create contact")
	if err != nil {
		return nil, c.set(err, "")
	}
	ct, err := c.api.CreateContact(ctx, in)
	if err != nil {
		return nil, c.set(err, "Erro ao criar contato.")
	}
	if !known(ct, contactID) {
		return nil, c.set(nil, "")
	}
	c.mu.Lock()
	c.items = append(c.items, *ct)
	c.mu.Unlock()
	return ct, c.set(nil, "")
}

// Update validates form, patches the contact and replaces it in place.
func (c *ContactBook) Update(ctx context.Context, id int64, form ContactForm) (*client.Contact, error) {
	in, err := form.Input("update contact")
	if err != nil {
		return nil, c.set(err, "")
	}
	ct, err := c.api.UpdateContact(ctx, id, in)
	if err != nil {
		return nil, c.set(err, "Erro ao atualizar contato.")
	}
	if !known(ct, contactID) {
		return nil, c.set(nil, "")
	}
	c.mu.Lock()
	replaceByID(c.items, *ct, contactID)
	c.mu.Unlock()
	return ct, c.set(nil, "")
}

// Delete removes the contact remotely, then locally.
func (c *ContactBook) Delete(ctx context.Context, id int64) error {
	if err := c.api.DeleteContact(ctx, id); err != nil {
		return c.set(err, "Erro ao excluir contato.")
	}
	c.mu.Lock()
	c.items, _ = removeByID(c.items, id, contactID)
	c.mu.Unlock()
	return c.set(nil, "")
}
