package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"userDirectory/internal/metrics"
	"userDirectory/models"
	"userDirectory/repository"
)

// UserHandler serves the user admin pages.
type UserHandler struct {
	Users repository.UserRepositoryI
	Log   *logrus.Logger
}

func NewUserHandler(users repository.UserRepositoryI, log *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Log: log}
}

// Index lists every user. A storage failure is not mapped to a message.
func (h *UserHandler) Index(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		h.logger(c).WithError(err).Error("list users")
		renderError(c, http.StatusInternalServerError)
		return
	}
	c.HTML(http.StatusOK, tmplIndex, listView{Users: users})
}

// AddForm renders the empty create form.
func (h *UserHandler) AddForm(c *gin.Context) {
	c.HTML(http.StatusOK, tmplAdd, formView{})
}

// Add creates a user from the submitted form. On failure the form is shown
// again empty, with the message for the failure kind.
func (h *UserHandler) Add(c *gin.Context) {
	u, ok := h.readUser(c)
	if !ok {
		return
	}
	if err := h.Users.Create(c.Request.Context(), &u); err != nil {
		h.writeFailed(c, "create", err)
		c.HTML(http.StatusOK, tmplAdd, formView{ErrorMessage: repository.KindOf(err).Message()})
		return
	}
	h.logger(c).WithField("user_id", u.ID).Info("user created")
	c.Redirect(http.StatusSeeOther, "/")
}

// EditForm renders the form prefilled with the stored values.
func (h *UserHandler) EditForm(c *gin.Context) {
	u, ok := h.lookup(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, tmplEdit, formView{User: *u})
}

// Edit overwrites name, email and role of the stored user. On failure the
// form is shown with the submitted values, which were never committed.
func (h *UserHandler) Edit(c *gin.Context) {
	u, ok := h.lookup(c)
	if !ok {
		return
	}
	submitted, ok := h.readUser(c)
	if !ok {
		return
	}
	u.Name, u.Email, u.Role = submitted.Name, submitted.Email, submitted.Role

	if err := h.Users.Update(c.Request.Context(), u); err != nil {
		if repository.KindOf(err) == repository.KindNotFound {
			renderError(c, http.StatusNotFound)
			return
		}
		h.writeFailed(c, "update", err)
		c.HTML(http.StatusOK, tmplEdit, formView{User: *u, ErrorMessage: repository.KindOf(err).Message()})
		return
	}
	h.logger(c).WithField("user_id", u.ID).Info("user updated")
	c.Redirect(http.StatusSeeOther, "/")
}

// Delete removes the user and always returns to the listing; a failed delete
// is rolled back and only logged.
func (h *UserHandler) Delete(c *gin.Context) {
	u, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := h.Users.Delete(c.Request.Context(), u); err != nil {
		h.writeFailed(c, "delete", err)
	} else {
		h.logger(c).WithField("user_id", u.ID).Info("user deleted")
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// lookup resolves the :id path parameter. It writes the response and returns
// false when the id is malformed or unknown.
func (h *UserHandler) lookup(c *gin.Context) (*models.User, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 63)
	if err != nil {
		renderError(c, http.StatusNotFound)
		return nil, false
	}
	u, err := h.Users.GetByID(c.Request.Context(), int64(id))
	switch repository.KindOf(err) {
	case repository.KindNone:
		return u, true
	case repository.KindNotFound:
		renderError(c, http.StatusNotFound)
	default:
		h.logger(c).WithError(err).Error("get user")
		renderError(c, http.StatusInternalServerError)
	}
	return nil, false
}

// readUser reads the three required form fields. A missing field ends the
// request with 400; empty values are passed through.
func (h *UserHandler) readUser(c *gin.Context) (models.User, bool) {
	var u models.User
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"name", &u.Name},
		{"email", &u.Email},
		{"role", &u.Role},
	} {
		v, ok := c.GetPostForm(f.key)
		if !ok {
			renderErrorMessage(c, http.StatusBadRequest, fmt.Sprintf("Missing form field %q.", f.key))
			return models.User{}, false
		}
		*f.dst = v
	}
	return u, true
}

func (h *UserHandler) writeFailed(c *gin.Context, op string, err error) {
	kind := repository.KindOf(err)
	metrics.RecordStorageFailure(op, kind.String())
	h.logger(c).WithError(err).WithFields(logrus.Fields{
		"op":   op,
		"kind": kind.String(),
	}).Warn("user write failed")
}

func (h *UserHandler) logger(c *gin.Context) *logrus.Entry {
	return h.Log.WithField("request_id", c.GetString(requestIDKey))
}

func renderError(c *gin.Context, status int) {
	renderErrorMessage(c, status, "")
}

func renderErrorMessage(c *gin.Context, status int, msg string) {
	if msg == "" {
		switch status {
		case http.StatusNotFound:
			msg = "The requested URL was not found on the server."
		default:
			msg = "The server encountered an internal error."
		}
	}
	c.HTML(status, tmplError, errorView{
		Title:   fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Message: msg,
	})
	c.Abort()
}
