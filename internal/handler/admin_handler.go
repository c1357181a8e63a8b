package handler

import (
	"net/http"
	"time"

	"jobsy/internal/repository"
	"jobsy/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves moderation: the review queue, lifecycle decisions,
// extensions, manual entitlement grants, and the sweep trigger.
type AdminHandler struct {
	admin        *repository.AdminRepository
	lifecycle    *service.LifecycleService
	entitlements *service.EntitlementService
	sweep        *service.SweepService
}

func NewAdminHandler(admin *repository.AdminRepository, lifecycle *service.LifecycleService,
	entitlements *service.EntitlementService, sweep *service.SweepService) *AdminHandler {
	return &AdminHandler{
		admin:        admin,
		lifecycle:    lifecycle,
		entitlements: entitlements,
		sweep:        sweep,
	}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.admin.GetSiteStats()
	if err != nil {
		respondError(c, err)
		return
	}
	listingsByDay, _ := h.admin.ListingsByDay(30)
	applicationsByDay, _ := h.admin.ApplicationsByDay(30)
	c.JSON(http.StatusOK, gin.H{
		"stats":               stats,
		"listings_by_day":     listingsByDay,
		"applications_by_day": applicationsByDay,
	})
}

// Listings returns the moderation view; ?status filters, ?include_deleted
// widens to soft-deleted rows.
func (h *AdminHandler) Listings(c *gin.Context) {
	list, total, err := h.admin.ListListings(c.Query("status"), c.Query("include_deleted") == "true",
		atoiDefault(c.Query("page"), 1), atoiDefault(c.Query("limit"), 20))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": list, "total": total})
}

func (h *AdminHandler) Users(c *gin.Context) {
	users, total, err := h.admin.ListUsers(c.Query("search"), c.Query("role"),
		atoiDefault(c.Query("page"), 1), atoiDefault(c.Query("limit"), 20))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total": total})
}

type DecideRequest struct {
	Outcome  string `json:"outcome" binding:"required,oneof=approve reject"`
	Feedback string `json:"feedback"`
}

// Decide approves or rejects a listing under review.
func (h *AdminHandler) Decide(c *gin.Context) {
	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	l, err := h.lifecycle.Decide(paramID(c, "id"), req.Outcome, req.Feedback)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

type ExtendRequest struct {
	Days      int  `json:"days"`
	BumpToTop bool `json:"bump_to_top"`
}

// Extend grants an extension: additive for live listings, a fresh window for
// expired ones, always landing on approved.
func (h *AdminHandler) Extend(c *gin.Context) {
	var req ExtendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	l, err := h.lifecycle.AdminExtend(paramID(c, "id"), req.Days, req.BumpToTop)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listing": l, "days_until_expiration": l.DaysUntilExpiration(time.Now())})
}

// Reactivate gives an expired listing a fresh default window and bumps it.
func (h *AdminHandler) Reactivate(c *gin.Context) {
	l, err := h.lifecycle.Reactivate(paramID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// Expire forces a listing to expired ahead of the sweep.
func (h *AdminHandler) Expire(c *gin.Context) {
	changed, err := h.lifecycle.MarkExpired(paramID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expired": changed})
}

// Delete soft-deletes any listing. Admin calls skip the ownership check.
func (h *AdminHandler) Delete(c *gin.Context) {
	if err := h.lifecycle.SoftDelete(0, paramID(c, "id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *AdminHandler) Restore(c *gin.Context) {
	l, err := h.lifecycle.Restore(0, paramID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// GrantCVAccess sets the sticky manual entitlement for an employer. It
// survives listing expiration until explicitly revoked.
func (h *AdminHandler) GrantCVAccess(c *gin.Context) {
	if err := h.entitlements.GrantManual(paramID(c, "id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "granted"})
}

// RevokeCVAccess clears the manual grant and recomputes the automatic flag.
func (h *AdminHandler) RevokeCVAccess(c *gin.Context) {
	if err := h.entitlements.RevokeManual(paramID(c, "id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "revoked"})
}

// RunSweep triggers one expiration sweep pass and reports its counters.
func (h *AdminHandler) RunSweep(c *gin.Context) {
	result, err := h.sweep.Run(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
