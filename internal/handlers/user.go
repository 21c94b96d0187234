package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"companion-matcher/internal/apperr"
	"companion-matcher/internal/config"
	"companion-matcher/internal/models"
	"companion-matcher/internal/store"
)

type UserHandler struct {
	directory *store.Directory
	shortlist store.ShortlistRegistry
	cfg       *config.Config
}

func NewUserHandler(directory *store.Directory, shortlist store.ShortlistRegistry, cfg *config.Config) *UserHandler {
	return &UserHandler{
		directory: directory,
		shortlist: shortlist,
		cfg:       cfg,
	}
}

// RegisterValidators installs the custom binding rules profile creation
// relies on. Call once before the router handles traffic.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("interests", func(fl validator.FieldLevel) bool {
			interests, ok := fl.Field().Interface().([]string)
			if !ok || len(interests) == 0 {
				return false
			}
			for _, interest := range interests {
				if strings.TrimSpace(interest) == "" {
					return false
				}
			}
			return true
		})
	}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.CreateUserResponse{
			Success: false,
			Message: createUserBindingMessage(err),
		})
		return
	}

	if req.Age < h.cfg.MinAge || req.Age > h.cfg.MaxAge {
		c.JSON(http.StatusBadRequest, models.CreateUserResponse{
			Success: false,
			Message: "Age is required and must be between 13 and 120",
		})
		return
	}

	interests := make([]string, 0, len(req.Interests))
	for _, interest := range req.Interests {
		interests = append(interests, strings.ToLower(strings.TrimSpace(interest)))
	}

	profile := &models.UserProfile{
		Name:       strings.TrimSpace(req.Name),
		Age:        req.Age,
		Interests:  interests,
		Photo:      req.Photo,
		Bio:        strings.TrimSpace(req.Bio),
		Location:   strings.TrimSpace(req.Location),
		Occupation: strings.TrimSpace(req.Occupation),
		LookingFor: strings.TrimSpace(req.LookingFor),
	}

	if err := h.directory.Create(profile); err != nil {
		c.JSON(apperr.StatusOf(err), models.CreateUserResponse{
			Success: false,
			Message: apperr.MessageOf(err),
		})
		return
	}

	logrus.WithField("user", store.NormalizeUsername(profile.Name)).Info("profile created")
	c.JSON(http.StatusCreated, models.CreateUserResponse{
		Success: true,
		Message: "User created successfully",
		User:    profile,
	})
}

func (h *UserHandler) AddToShortlist(c *gin.Context) {
	var req models.ShortlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ShortlistResponse{
			Success: false,
			Message: "Both username and targetUsername are required",
		})
		return
	}

	if _, ok := h.directory.Get(req.Username); !ok {
		c.JSON(http.StatusNotFound, models.ShortlistResponse{
			Success: false,
			Message: "One or both users not found",
		})
		return
	}
	if _, ok := h.directory.Get(req.TargetUsername); !ok {
		c.JSON(http.StatusNotFound, models.ShortlistResponse{
			Success: false,
			Message: "One or both users not found",
		})
		return
	}
	if store.NormalizeUsername(req.Username) == store.NormalizeUsername(req.TargetUsername) {
		c.JSON(http.StatusBadRequest, models.ShortlistResponse{
			Success: false,
			Message: "Cannot shortlist yourself",
		})
		return
	}

	if err := h.shortlist.Add(c.Request.Context(), req.Username, req.TargetUsername); err != nil {
		logrus.WithError(err).Error("shortlist add failed")
		c.JSON(apperr.StatusOf(err), models.ShortlistResponse{
			Success: false,
			Message: apperr.MessageOf(err),
		})
		return
	}

	c.JSON(http.StatusOK, models.ShortlistResponse{
		Success: true,
		Message: "User added to shortlist",
	})
}

func (h *UserHandler) GetShortlist(c *gin.Context) {
	username := c.Param("username")

	members, err := h.shortlist.Members(c.Request.Context(), username)
	if err != nil {
		logrus.WithError(err).Error("shortlist read failed")
		c.JSON(apperr.StatusOf(err), models.GetShortlistResponse{Shortlist: []models.UserMatch{}})
		return
	}

	shortlist := make([]models.UserMatch, 0, len(members))
	for _, name := range members {
		if profile, ok := h.directory.Get(name); ok {
			shortlist = append(shortlist, profile.AsMatch())
		}
	}

	c.JSON(http.StatusOK, models.GetShortlistResponse{Shortlist: shortlist})
}

// createUserBindingMessage keeps the wire messages for the common validation
// failures identical to what clients already expect.
func createUserBindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Field() {
			case "Name":
				return "Name is required and must be a non-empty string"
			case "Age":
				return "Age is required and must be between 13 and 120"
			case "Interests":
				return "Interests are required and must be a non-empty array"
			}
		}
	}
	return "Invalid request body"
}
