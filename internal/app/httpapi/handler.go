package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	app "github.com/golden-burguer/appcore/internal/app"
	"github.com/golden-burguer/appcore/internal/app/services/accounts"
	"github.com/golden-burguer/appcore/internal/app/services/profile"
	"github.com/golden-burguer/appcore/internal/app/storage"
	"github.com/golden-burguer/appcore/internal/app/validation"
	"github.com/golden-burguer/appcore/pkg/logger"
)

// handler bundles the HTTP endpoints for the application services.
type handler struct {
	app *app.Application
	log *logger.Logger
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender"`
	BirthDate string `json:"birth_date"`
	Street    string `json:"street"`
	Number    string `json:"number"`
	City      string `json:"city"`
	Region    string `json:"region"`
	Commune   string `json:"commune"`
}

func (h *handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form := validation.NewForm()
	form.SetField(validation.FieldEmail, req.Email)
	form.SetField(validation.FieldPassword, req.Password)
	form.SetField(validation.FieldFullName, req.FullName)
	form.SetField(validation.FieldPhone, req.Phone)
	form.SetField(validation.FieldGender, req.Gender)
	form.SetField(validation.FieldBirthDate, req.BirthDate)
	form.SetField(validation.FieldStreet, req.Street)
	form.SetField(validation.FieldNumber, req.Number)
	form.SetField(validation.FieldCity, req.City)
	form.SetField(validation.FieldRegion, req.Region)
	form.SetField(validation.FieldCommune, req.Commune)

	u, err := h.app.Accounts.Register(c.Request.Context(), form)
	switch {
	case errors.Is(err, accounts.ErrFormInvalid):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":        err.Error(),
			"field_errors": form.Errors(),
		})
	case errors.Is(err, storage.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusCreated, u)
	}
}

func (h *handler) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.app.Accounts.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, accounts.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, accounts.ErrTooManyAttempts):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, u)
	}
}

func (h *handler) logout(c *gin.Context) {
	if err := h.app.Logout(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) session(c *gin.Context) {
	email, ok, err := h.app.Sessions.AuthenticatedEmail(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": ok, "email": email})
}

func (h *handler) catalogState(c *gin.Context) {
	snap := h.app.Catalog.State()
	c.JSON(http.StatusOK, gin.H{
		"products":  snap.Products,
		"favorites": snap.Favorites,
	})
}

func (h *handler) toggleFavorite(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	var req struct {
		CurrentlyFavorite bool `json:"currently_favorite"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Fire-and-forget: the new value becomes visible through the catalog
	// subscription once the write commits.
	h.app.Catalog.ToggleFavorite(id, req.CurrentlyFavorite)
	c.Status(http.StatusAccepted)
}

func (h *handler) cart(c *gin.Context) {
	snap := h.app.Catalog.State()
	c.JSON(http.StatusOK, gin.H{
		"items":    snap.Cart,
		"subtotal": snap.Subtotal(),
	})
}

func (h *handler) addToCart(c *gin.Context) {
	var req struct {
		ProductID int `json:"product_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, p := range h.app.Catalog.State().Products {
		if p.ID == req.ProductID {
			h.app.Catalog.AddToCart(p)
			h.cart(c)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "unknown product"})
}

func (h *handler) increaseQuantity(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	h.app.Catalog.IncreaseQuantity(id)
	h.cart(c)
}

func (h *handler) decreaseQuantity(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	h.app.Catalog.DecreaseQuantity(id)
	h.cart(c)
}

func (h *handler) clearCart(c *gin.Context) {
	h.app.Catalog.ClearCart()
	c.Status(http.StatusNoContent)
}

func (h *handler) profile(c *gin.Context) {
	st := h.app.Profile.Load(c.Request.Context())
	if st.User == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no authenticated user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": st.User, "edits": st.Edits})
}

func (h *handler) saveProfile(c *gin.Context) {
	var edits profile.Edits
	if err := c.ShouldBindJSON(&edits); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st := h.app.Profile.Load(c.Request.Context())
	if st.User == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no authenticated user"})
		return
	}

	updated, err := h.app.Profile.Save(c.Request.Context(), st.User, edits)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, updated)
	}
}

func (h *handler) darkMode(c *gin.Context) {
	enabled, err := h.app.Sessions.DarkMode(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dark_mode": enabled})
}

func (h *handler) setDarkMode(c *gin.Context) {
	var req struct {
		DarkMode bool `json:"dark_mode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.app.Sessions.SetDarkMode(c.Request.Context(), req.DarkMode); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dark_mode": req.DarkMode})
}
