package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"jobsy/internal/middleware"
	"jobsy/internal/models"
	"jobsy/internal/repository"
	"jobsy/internal/service"
	"jobsy/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// JobHandler serves the public feed and the candidate-facing endpoints:
// applications, saved jobs, notifications.
type JobHandler struct {
	listings      *repository.ListingRepository
	applications  *repository.ApplicationRepository
	notifications *repository.NotificationRepository
	admin         *repository.AdminRepository
	users         *repository.UserRepository
	appSvc        *service.ApplicationService
	blobs         storage.Client
}

func NewJobHandler(listings *repository.ListingRepository, applications *repository.ApplicationRepository,
	notifications *repository.NotificationRepository, admin *repository.AdminRepository,
	users *repository.UserRepository, appSvc *service.ApplicationService, blobs storage.Client) *JobHandler {
	return &JobHandler{
		listings:      listings,
		applications:  applications,
		notifications: notifications,
		admin:         admin,
		users:         users,
		appSvc:        appSvc,
		blobs:         blobs,
	}
}

// Feed lists publicly visible jobs: premium_plus first, then premium, then
// standard, with recently bumped listings ahead within each tier.
func (h *JobHandler) Feed(c *gin.Context) {
	f := repository.FeedFilters{
		Category:       c.Query("category"),
		Location:       c.Query("location"),
		Experience:     c.Query("experience"),
		JobPreferences: c.Query("job_preferences"),
		PremiumLevel:   c.Query("premium_level"),
		Search:         c.Query("search"),
		Limit:          atoiDefault(c.Query("limit"), 20),
		Offset:         atoiDefault(c.Query("offset"), 0),
	}
	if v := c.Query("considers_students"); v != "" {
		b := v == "true" || v == "1"
		f.ConsidersStudents = &b
	}
	list, err := h.listings.PublicFeed(f, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": feedViews(list), "count": len(list)})
}

// Detail returns one public listing and counts the view. Expired and deleted
// listings are not served here.
func (h *JobHandler) Detail(c *gin.Context) {
	id := paramID(c, "id")
	l, err := h.listings.GetActiveByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	now := time.Now()
	if l.IsExpired(now) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	_ = h.listings.IncrementViewCount(l.ID)
	c.JSON(http.StatusOK, feedView(l, now))
}

type ApplyRequest struct {
	GuestName   string `json:"guest_name"`
	GuestEmail  string `json:"guest_email" binding:"omitempty,email"`
	CoverLetter string `json:"cover_letter"`
	ResumeURL   string `json:"resume_url"`
}

// Apply accepts both authenticated and guest applications. Guests must
// supply a name and email.
func (h *JobHandler) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in := service.ApplyInput{
		GuestName:   req.GuestName,
		GuestEmail:  req.GuestEmail,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
	}
	if userID := middleware.GetUserID(c); userID != 0 {
		in.UserID = &userID
	} else if req.GuestName == "" || req.GuestEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "guest_name and guest_email required for guest applications"})
		return
	}
	app, err := h.appSvc.Apply(paramID(c, "id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// ToggleSave saves or unsaves a listing for the authenticated candidate.
func (h *JobHandler) ToggleSave(c *gin.Context) {
	userID := middleware.GetUserID(c)
	saved, err := h.appSvc.ToggleSaved(userID, paramID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

func (h *JobHandler) SavedJobs(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := h.applications.ListSavedByUser(userID, atoiDefault(c.Query("limit"), 20), atoiDefault(c.Query("offset"), 0))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved_jobs": list})
}

func (h *JobHandler) MyApplications(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := h.applications.ListByUser(userID, atoiDefault(c.Query("limit"), 20), atoiDefault(c.Query("offset"), 0))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": list})
}

func (h *JobHandler) MyNotifications(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := h.notifications.ListByCandidate(userID, atoiDefault(c.Query("limit"), 20), atoiDefault(c.Query("offset"), 0))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

func (h *JobHandler) MarkNotificationRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if err := h.notifications.MarkCandidateRead(paramID(c, "id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UploadCV stores the candidate's CV and saves its URL on the profile,
// making the candidate eligible for the CV database once they opt in.
func (h *JobHandler) UploadCV(c *gin.Context) {
	u, err := h.users.GetByID(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()

	publicID := "cv_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	url, err := h.blobs.Upload(c.Request.Context(), f, "jobsy/cvs", publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	u.CVURL = url
	if err := h.users.Update(u); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

type VisibilityRequest struct {
	VisibleToEmployers bool   `json:"visible_to_employers"`
	DesiredField       string `json:"desired_field"`
	FieldExperience    string `json:"field_experience"`
}

// UpdateVisibility opts the candidate in or out of the employer-facing CV
// database and records their search profile.
func (h *JobHandler) UpdateVisibility(c *gin.Context) {
	u, err := h.users.GetByID(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	var req VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u.VisibleToEmployers = req.VisibleToEmployers
	if req.DesiredField != "" {
		u.DesiredField = req.DesiredField
	}
	if req.FieldExperience != "" {
		u.FieldExperience = req.FieldExperience
	}
	if err := h.users.Update(u); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Pricing lists the informational premium packages.
func (h *JobHandler) Pricing(c *gin.Context) {
	pkgs, err := h.admin.ListPricingPackages()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"packages": pkgs})
}

// feedView decorates a listing with its remaining days for list and detail
// responses.
func feedView(l *models.Listing, now time.Time) gin.H {
	return gin.H{
		"listing":               l,
		"days_until_expiration": l.DaysUntilExpiration(now),
	}
}

func feedViews(list []models.Listing) []gin.H {
	now := time.Now()
	out := make([]gin.H, 0, len(list))
	for i := range list {
		out = append(out, feedView(&list[i], now))
	}
	return out
}

func paramID(c *gin.Context, name string) uint {
	n, _ := strconv.ParseUint(c.Param(name), 10, 64)
	return uint(n)
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
