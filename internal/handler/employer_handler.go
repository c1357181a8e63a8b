package handler

import (
	"net/http"
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

// EmployerHandler serves the employer dashboard: listings, extension
// requests, applications, notifications, the CV database, and profile.
type EmployerHandler struct {
	listings      *repository.ListingRepository
	employers     *repository.EmployerRepository
	applications  *repository.ApplicationRepository
	notifications *repository.NotificationRepository
	lifecycle     *service.LifecycleService
	entitlements  *service.EntitlementService
	appSvc        *service.ApplicationService
	blobs         storage.Client
}

func NewEmployerHandler(listings *repository.ListingRepository, employers *repository.EmployerRepository,
	applications *repository.ApplicationRepository, notifications *repository.NotificationRepository,
	lifecycle *service.LifecycleService, entitlements *service.EntitlementService,
	appSvc *service.ApplicationService, blobs storage.Client) *EmployerHandler {
	return &EmployerHandler{
		listings:      listings,
		employers:     employers,
		applications:  applications,
		notifications: notifications,
		lifecycle:     lifecycle,
		entitlements:  entitlements,
		appSvc:        appSvc,
		blobs:         blobs,
	}
}

// employer resolves the authenticated user's employer profile. Aborts with
// 403 when the account has none.
func (h *EmployerHandler) employer(c *gin.Context) (*models.Employer, bool) {
	emp, err := h.employers.GetByUserID(middleware.GetUserID(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "employer profile required"})
		return nil, false
	}
	return emp, true
}

type PostJobRequest struct {
	Title             string   `json:"title" binding:"required,max=100"`
	Company           string   `json:"company" binding:"max=100"`
	Description       string   `json:"description"`
	SalaryMin         *float64 `json:"salary_min"`
	SalaryMax         *float64 `json:"salary_max"`
	SalaryType        string   `json:"salary_type"`
	Category          string   `json:"category"`
	Location          string   `json:"location"`
	Experience        string   `json:"experience"`
	JobPreferences    string   `json:"job_preferences"`
	ConsidersStudents bool     `json:"considers_students"`
	ExternalLink      string   `json:"external_link"`
	PremiumLevel      string   `json:"premium_level" binding:"omitempty,oneof=standard premium premium_plus"`
}

// PostJob submits a new listing for review.
func (h *EmployerHandler) PostJob(c *gin.Context) {
	emp, ok := h.employer(c)
	if !ok {
		return
	}
	var req PostJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	l := &models.Listing{
		Title:             req.Title,
		Company:           req.Company,
		Description:       req.Description,
		SalaryMin:         req.SalaryMin,
		SalaryMax:         req.SalaryMax,
		SalaryType:        req.SalaryType,
		Category:          req.Category,
		Location:          req.Location,
		Experience:        req.Experience,
		JobPreferences:    req.JobPreferences,
		ConsidersStudents: req.ConsidersStudents,
		ExternalLink:      req.ExternalLink,
		PremiumLevel:      req.PremiumLevel,
	}
	if err := h.lifecycle.CreateListing(emp.ID, l); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

// MyJobs lists the employer's listings in triage order. ?include_deleted=true
// widens the view to soft-deleted rows.
func (h *EmployerHandler) MyJobs(c *gin.Context) {
	emp, ok := h.employer(c)
	if !ok {
		return
	}
	includeDeleted := c.Query("include_deleted") == "true"
	list, err := h.listings.ListByEmployer(emp.ID, includeDeleted, c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": feedViews(list), "count": len(list)})
}

// DeletedJobs lists only the employer's soft-deleted listings.
func (h *EmployerHandler) DeletedJobs(c *gin.Context) {
	emp, ok := h.employer(c)
	if !ok {
		return
	}
	list, err := h.listings.ListDeletedByEmployer(emp.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": list, "count": len(list)})
}

// JobDetail returns one of the employer's listings, deleted or not.
func (h *EmployerHandler) JobDetail(c *gin.Context) {
	emp, ok := h.employer(c)
	if !ok {
		return
	}
	l, err := h.listings.GetIncludingDeleted(paramID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if l.EmployerID != emp.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, feedView(l, time.Now()))
}

// RequestExtension places an approved or expired listing into the extension
// review queue. The expiry date stays untouched until an admin decides.
func (h *EmployerHandler) RequestExtension(c *gin.Context) {
	emp, ok := h.employer(c)
	if !ok {
		return
	}
	l, err := h.lifecycle.RequestExtension(emp.ID, paramID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// DeleteJob soft-deletes a listing. It disappears from every public view but
// stays restorable.
func (h *EmployerHandler) DeleteJob(c *gin.Context) {
	emp, ok := h.employer(c)
	if !ok {
		return
	}
	if err := h.lifecycle.SoftDelete(emp.ID, paramID(c, "id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// RestoreJob brings a soft-deleted listing back as pending_review.
func (h *EmployerHandler) RestoreJob(c *gin.Context) {
	emp, ok := h.employer(c)
	if !ok {
		return
	}
	l, err := h.lifecycle.Restore(emp.ID, paramID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// Dashboard returns the employer's aggregate counters.
func (h *EmployerHandler) Dashboard(c *gin.Context) {
	emp, ok := h.employer(c)
	if !ok {
		return
	}
	stats, err := h.applications.GetEmployerStats(emp.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	cvAccess, _ := h.entitlements.HasPremiumPlusAccess(emp.ID)
	c.JSON(http.StatusOK, gin.H{"stats": stats, "cv_access": cvAccess})
}

// JobApplications lists applications for one of the employer's listings.
func (h *EmployerHandler) JobApplications(c *gin.Context) {
	emp, ok := h.employer(c)
	if !ok {
		return
	}
	list, err := h.appSvc.ListForListing(emp.ID, paramID(c, "id"),
		atoiDefault(c.Query("limit"), 20), atoiDefault(c.Query("offset"), 0))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": list, "count": len(list)})
}

type UpdateApplicationRequest struct {
	Status   string `json:"status" binding:"required,oneof=in_review interview reserve"`
	Feedback string `json:"feedback"`
}

// UpdateApplication moves an application between stages; candidates are
// notified on interview/reserve.
func (h *EmployerHandler) UpdateApplication(c *gin.Context) {
	emp, ok := h.employer(c)
	if !ok {
		return
	}
	var req UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	app, err := h.appSvc.UpdateStatus(emp.ID, paramID(c, "id"), req.Status, req.Feedback)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *EmployerHandler) MarkApplicationRead(c *gin.Context) {
	emp, ok := h.employer(c)
	if !ok {
		return
	}
	if err := h.appSvc.MarkRead(emp.ID, paramID(c, "id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Notifications lists employer notifications; ?unread=true narrows to unread.
func (h *EmployerHandler) Notifications(c *gin.Context) {
	emp, ok := h.employer(c)
	if !ok {
		return
	}
	list, err := h.notifications.ListByEmployer(emp.ID, c.Query("unread") == "true",
		atoiDefault(c.Query("limit"), 20), atoiDefault(c.Query("offset"), 0))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

func (h *EmployerHandler) UnreadNotificationCount(c *gin.Context) {
	emp, ok := h.employer(c)
	if !ok {
		return
	}
	n, err := h.notifications.CountUnreadByEmployer(emp.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": n})
}

func (h *EmployerHandler) MarkNotificationRead(c *gin.Context) {
	emp, ok := h.employer(c)
	if !ok {
		return
	}
	if err := h.notifications.MarkRead(paramID(c, "id"), emp.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *EmployerHandler) MarkAllNotificationsRead(c *gin.Context) {
	emp, ok := h.employer(c)
	if !ok {
		return
	}
	n, err := h.notifications.MarkAllRead(emp.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked": n})
}

// CVDatabase lists visible candidates. Access requires the premium plus
// entitlement (active premium_plus listing or a manual admin grant).
func (h *EmployerHandler) CVDatabase(c *gin.Context) {
	emp, ok := h.employer(c)
	if !ok {
		return
	}
	allowed, err := h.entitlements.HasPremiumPlusAccess(emp.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "CV database requires an active premium plus listing"})
		return
	}
	candidates, err := h.employers.ListCVDatabaseCandidates(c.Query("field"),
		atoiDefault(c.Query("limit"), 20), atoiDefault(c.Query("offset"), 0))
	if err != nil {
		respondError(c, err)
		return
	}
	for i := range candidates {
		_ = h.employers.LogCVAccess(emp.ID, candidates[i].ID)
	}
	c.JSON(http.StatusOK, gin.H{"candidates": candidates, "count": len(candidates)})
}

// UploadLogo stores a company logo and saves its URL on the profile.
func (h *EmployerHandler) UploadLogo(c *gin.Context) {
	emp, ok := h.employer(c)
	if !ok {
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

	publicID := "logo_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	url, err := h.blobs.Upload(c.Request.Context(), f, "jobsy/logos", publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	emp.CompanyLogoURL = url
	if err := h.employers.Update(emp); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *EmployerHandler) Profile(c *gin.Context) {
	emp, ok := h.employer(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, emp)
}

type UpdateProfileRequest struct {
	CompanyName        string `json:"company_name"`
	CompanyIdentifier  string `json:"company_identifier"`
	PhoneNumber        string `json:"phone_number"`
	ShowPhoneNumber    *bool  `json:"show_phone_number"`
	CompanyWebsite     string `json:"company_website"`
	CompanyDescription string `json:"company_description"`
	CompanySize        string `json:"company_size"`
	Industry           string `json:"industry"`
	Location           string `json:"location"`
}

func (h *EmployerHandler) UpdateProfile(c *gin.Context) {
	emp, ok := h.employer(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.CompanyName != "" {
		emp.CompanyName = req.CompanyName
	}
	if req.CompanyIdentifier != "" {
		emp.CompanyIdentifier = req.CompanyIdentifier
	}
	if req.PhoneNumber != "" {
		emp.PhoneNumber = req.PhoneNumber
	}
	if req.ShowPhoneNumber != nil {
		emp.ShowPhoneNumber = *req.ShowPhoneNumber
	}
	if req.CompanyWebsite != "" {
		emp.CompanyWebsite = req.CompanyWebsite
	}
	if req.CompanyDescription != "" {
		emp.CompanyDescription = req.CompanyDescription
	}
	if req.CompanySize != "" {
		emp.CompanySize = req.CompanySize
	}
	if req.Industry != "" {
		emp.Industry = req.Industry
	}
	if req.Location != "" {
		emp.Location = req.Location
	}
	if err := h.employers.Update(emp); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}
