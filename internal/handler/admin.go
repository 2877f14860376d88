package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/flavorconnect/flavorconnect/internal/ctxkeys"
	"github.com/flavorconnect/flavorconnect/internal/model"
	"github.com/flavorconnect/flavorconnect/internal/repository"
	"github.com/flavorconnect/flavorconnect/internal/router"
	"github.com/flavorconnect/flavorconnect/internal/service"
	"github.com/flavorconnect/flavorconnect/internal/session"
	"github.com/flavorconnect/flavorconnect/internal/ui"
	"github.com/flavorconnect/flavorconnect/internal/ui/pages"
	"github.com/flavorconnect/flavorconnect/internal/validation"
)

type AdminHandler struct {
	userService      *service.UserService
	recipeService    *service.RecipeService
	attributeService *service.AttributeService
}

func NewAdminHandler(userService *service.UserService, recipeService *service.RecipeService, attributeService *service.AttributeService) *AdminHandler {
	return &AdminHandler{
		userService:      userService,
		recipeService:    recipeService,
		attributeService: attributeService,
	}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.Count()
	if err != nil {
		renderError(w, r, err, "failed to count users")
		return
	}
	recipes, err := h.recipeService.Count(repository.RecipeFilter{})
	if err != nil {
		renderError(w, r, err, "failed to count recipes")
		return
	}
	featured, err := h.recipeService.Count(repository.RecipeFilter{Featured: true})
	if err != nil {
		renderError(w, r, err, "failed to count featured recipes")
		return
	}
	options, err := h.attributeService.Options()
	if err != nil {
		renderError(w, r, err, "failed to load categories")
		return
	}

	ui.Render(w, r, pages.Dashboard(pages.DashboardProps{
		Users:    users,
		Recipes:  recipes,
		Featured: featured,
		Options:  options,
	}))
}

func (h *AdminHandler) Categories(w http.ResponseWriter, r *http.Request) {
	h.categories(w, r, http.StatusOK, pages.CategoriesProps{})
}

func (h *AdminHandler) categories(w http.ResponseWriter, r *http.Request, status int, props pages.CategoriesProps) {
	options, err := h.attributeService.Options()
	if err != nil {
		renderError(w, r, err, "failed to load categories")
		return
	}
	props.Options = options
	ui.RenderStatus(w, r, status, pages.Categories(props))
}

// SaveCategory creates (no id) or renames (with id) a style, diet, type or measurement
func (h *AdminHandler) SaveCategory(w http.ResponseWriter, r *http.Request) {
	kind := router.Param(r, "kind")
	id := router.Param(r, "id")
	name := r.FormValue("name")

	var err error
	if kind == pages.MeasurementKind {
		err = h.attributeService.SaveMeasurement(actor(r), &model.Measurement{ID: id, Name: name})
	} else {
		attrKind, kindErr := model.ParseAttributeKind(kind)
		if kindErr != nil {
			NotFound(w, r)
			return
		}
		kind = string(attrKind)
		err = h.attributeService.Save(actor(r), &model.Attribute{ID: id, Name: name, Kind: attrKind})
	}

	var errs validation.Errors
	if errors.As(err, &errs) {
		if msg := errs.Get("name"); msg != "" {
			errs = validation.Errors{"name": msg}
			if id != "" {
				errs = validation.Errors{"form": msg}
			}
		}
		h.categories(w, r, http.StatusUnprocessableEntity, pages.CategoriesProps{ErrorKind: kind, Name: name, Errors: errs})
		return
	}
	if err != nil {
		renderError(w, r, err, "failed to save category", "kind", kind, "id", id)
		return
	}

	session.FromContext(r.Context()).SetMessage(w, "Saved "+name+".")
	redirect(w, r, ctxkeys.URL(r.Context(), "admin.categories")+"#"+kind)
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	kind := router.Param(r, "kind")
	id := router.Param(r, "id")

	var err error
	if kind == pages.MeasurementKind {
		err = h.attributeService.DeleteMeasurement(actor(r), id)
	} else {
		attrKind, kindErr := model.ParseAttributeKind(kind)
		if kindErr != nil {
			NotFound(w, r)
			return
		}
		kind = string(attrKind)
		err = h.attributeService.Delete(actor(r), attrKind, id)
	}
	if err != nil {
		renderError(w, r, err, "failed to delete category", "kind", kind, "id", id)
		return
	}

	session.FromContext(r.Context()).SetMessage(w, "Deleted.")
	redirect(w, r, ctxkeys.URL(r.Context(), "admin.categories")+"#"+kind)
}

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.All()
	if err != nil {
		renderError(w, r, err, "failed to list users")
		return
	}
	ui.Render(w, r, pages.Users(pages.UsersProps{Users: users}))
}

func (h *AdminHandler) ToggleUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.ToggleActive(actor(r), router.Param(r, "id"))
	if h.userActionFailed(w, r, err) {
		return
	}

	msg := user.Username + " is now inactive."
	if user.IsActive {
		msg = user.Username + " is active again."
	}
	h.backToUsers(w, r, msg)
}

func (h *AdminHandler) SetUserLevel(w http.ResponseWriter, r *http.Request) {
	level := model.UserLevel(r.FormValue("level"))
	if !level.Valid() {
		h.backToUsers(w, r, "Unknown role.")
		return
	}

	user, err := h.userService.SetLevel(actor(r), router.Param(r, "id"), level)
	if h.userActionFailed(w, r, err) {
		return
	}
	h.backToUsers(w, r, user.Username+" is now "+user.Level.Label()+".")
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	err := h.userService.Delete(actor(r), router.Param(r, "id"))
	if h.userActionFailed(w, r, err) {
		return
	}
	h.backToUsers(w, r, "User deleted.")
}

// userActionFailed turns rule violations into a flash on the users page and
// renders the error page for everything else
func (h *AdminHandler) userActionFailed(w http.ResponseWriter, r *http.Request, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, service.ErrCannotModifySelf), errors.Is(err, service.ErrLastSuperAdmin):
		h.backToUsers(w, r, capitalize(err.Error())+".")
	default:
		renderError(w, r, err, "user admin action failed", "user_id", router.Param(r, "id"))
	}
	return true
}

func (h *AdminHandler) backToUsers(w http.ResponseWriter, r *http.Request, msg string) {
	session.FromContext(r.Context()).SetMessage(w, msg)
	redirect(w, r, ctxkeys.URL(r.Context(), "admin.users"))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
