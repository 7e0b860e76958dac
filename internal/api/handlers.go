// internal/api/handlers.go
//
// Route handlers.  Each one decodes path, query, and body into a service
// request, calls one service operation, and writes the response.  Path
// parameters always win over the same key in the body.
package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/adept-content/internal/auth"
	"github.com/yanizio/adept-content/internal/domain"
	"github.com/yanizio/adept-content/internal/service"
)

/*──────────────────────────── collections ─────────────────────────────────*/

func (h *handlers) collectionAll(w http.ResponseWriter, r *http.Request) {
	resp, err := h.admin.CollectionAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) getCollection(w http.ResponseWriter, r *http.Request) {
	resp, err := h.admin.GetCollection(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) storeCollection(w http.ResponseWriter, r *http.Request) {
	var req service.StoreCollectionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.admin.StoreCollection(r.Context(), auth.IdentityFrom(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *handlers) updateCollection(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateCollectionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.ID = chi.URLParam(r, "id")
	resp, err := h.admin.UpdateCollection(r.Context(), auth.IdentityFrom(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) deleteCollection(w http.ResponseWriter, r *http.Request) {
	resp, err := h.admin.DeleteCollection(r.Context(), auth.IdentityFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) countOfCollection(w http.ResponseWriter, r *http.Request) {
	resp, err := h.admin.CountOfCollection(r.Context(), r.URL.Query().Get("identifier"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

/*──────────────────────────── content ─────────────────────────────────────*/

func (h *handlers) contentPaginate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := service.ContentPaginateRequest{
		ContentType: chi.URLParam(r, "type"),
		Order:       q.Get("order"),
	}
	if raw := q.Get("page"); raw != "" {
		page, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, r, domain.Invalid("page %q is not a number", raw))
			return
		}
		req.Page = page
	}
	resp, err := h.admin.ContentPaginate(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) storeContent(w http.ResponseWriter, r *http.Request) {
	var req service.StoreContentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.ContentType = chi.URLParam(r, "type")
	resp, err := h.admin.StoreContent(r.Context(), auth.IdentityFrom(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *handlers) getContent(w http.ResponseWriter, r *http.Request) {
	resp, err := h.admin.GetContent(r.Context(), service.GetContentRequest{
		ContentID:   chi.URLParam(r, "id"),
		ContentType: chi.URLParam(r, "type"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) updateContent(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateContentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.ContentID = chi.URLParam(r, "id")
	req.ContentType = chi.URLParam(r, "type")
	resp, err := h.admin.UpdateContent(r.Context(), auth.IdentityFrom(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) putContentIdentifier(w http.ResponseWriter, r *http.Request) {
	var req service.PutContentIdentifierRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.ContentID = chi.URLParam(r, "id")
	req.ContentType = chi.URLParam(r, "type")
	resp, err := h.admin.PutContentIdentifier(r.Context(), auth.IdentityFrom(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) deleteContent(w http.ResponseWriter, r *http.Request) {
	resp, err := h.admin.DeleteContent(r.Context(), auth.IdentityFrom(r.Context()), service.DeleteContentRequest{
		ContentID:   chi.URLParam(r, "id"),
		ContentType: chi.URLParam(r, "type"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) countOfIdentifier(w http.ResponseWriter, r *http.Request) {
	resp, err := h.admin.CountOfIdentifier(r.Context(), chi.URLParam(r, "type"), r.URL.Query().Get("identifier"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

/*──────────────────────────── public ──────────────────────────────────────*/

func (h *handlers) getCMSContent(w http.ResponseWriter, r *http.Request) {
	resp, err := h.public.GetCMSContent(r.Context(), service.GetCMSContentRequest{
		ContentType:       chi.URLParam(r, "type"),
		ContentIdentifier: chi.URLParam(r, "identifier"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) sentContactForm(w http.ResponseWriter, r *http.Request) {
	var req service.SentContactFormRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.public.SentContactForm(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
