package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client/internal/types"
)

const contactsPath = "/api/contatos/"

// contactBody is the JSON shape of a contact write.
type contactBody struct {
	Name      string `json:"nome"`
	Phone     string `json:"telefone"`
	Emergency bool   `json:"is_emergencia"`
}

func contactCall(op, method, path, fallback string, in types.ContactInput) call {
	cl := call{
		resource: "contacts",
		op:       op,
		method:   method,
		path:     path,
		guarded:  true,
		fallback: fallback,
	}
	if in.HasBinary() {
		form := &multipartBody{}
		form.field("nome", in.Name)
		form.field("telefone", in.Phone)
		form.field("is_emergencia", strconv.FormatBool(in.Emergency))
		form.file("foto", in.Photo)
		cl.form = form
	} else {
		cl.json = contactBody{Name: in.Name, Phone: in.Phone, Emergency: in.Emergency}
	}
	return cl
}

// ListContacts returns the contacts of the logged-in user.
func ListContacts(ctx context.Context, c Conn) ([]types.Contact, error) {
	var out []types.Contact
	err := c.do(ctx, call{
		resource: "contacts",
		op:       "list contacts",
		method:   http.MethodGet,
		path:     contactsPath,
		guarded:  true,
		fallback: "Erro ao carregar contatos.",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateContact stores a contact, as multipart when a photo is attached.
func CreateContact(ctx context.Context, c Conn, in types.ContactInput) (*types.Contact, error) {
	var out *types.Contact
	cl := contactCall("create contact", http.MethodPost, contactsPath, "Erro ao criar contato.", in)
	if err := c.do(ctx, cl, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateContact patches a contact.
func UpdateContact(ctx context.Context, c Conn, id int64, in types.ContactInput) (*types.Contact, error) {
	const op = "update contact"
	if err := validateID(op, id); err != nil {
		return nil, err
	}
	var out *types.Contact
	cl := contactCall(op, http.MethodPatch, itemPath("contatos", id), "Erro ao atualizar contato.", in)
	if err := c.do(ctx, cl, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteContact removes a contact.
func DeleteContact(ctx context.Context, c Conn, id int64) error {
	const op = "delete contact"
	if err := validateID(op, id); err != nil {
		return err
	}
	return c.do(ctx, call{
		resource: "contacts",
		op:       op,
		method:   http.MethodDelete,
		path:     itemPath("contatos", id),
		guarded:  true,
		fallback: "Erro ao excluir contato.",
	}, nil)
}
