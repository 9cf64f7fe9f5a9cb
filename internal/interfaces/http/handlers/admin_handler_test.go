package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"moto-club.backend/internal/domain/entities"
	domainerrors "moto-club.backend/internal/domain/errors"
	"moto-club.backend/pkg/utils"
)

type memberServiceStub struct {
	listFn   func(ctx context.Context, filter entities.UserFilter, p utils.PaginationParams) ([]*entities.User, utils.PaginationMeta, error)
	verifyFn func(ctx context.Context, userID uuid.UUID) (*entities.User, error)
	ratingFn func(ctx context.Context, userID uuid.UUID, rating int) (*entities.User, error)
}

func (s *memberServiceStub) ListUsers(ctx context.Context, filter entities.UserFilter, p utils.PaginationParams) ([]*entities.User, utils.PaginationMeta, error) {
	return s.listFn(ctx, filter, p)
}

func (s *memberServiceStub) VerifyUser(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return s.verifyFn(ctx, userID)
}

func (s *memberServiceStub) UpdateSafetyRating(ctx context.Context, userID uuid.UUID, rating int) (*entities.User, error) {
	return s.ratingFn(ctx, userID, rating)
}

type moderationServiceStub struct {
	pendingFn func(ctx context.Context) ([]*entities.RideSummary, error)
	approveFn func(ctx context.Context, rideID uuid.UUID) (*entities.ModerationResult, error)
	rejectFn  func(ctx context.Context, rideID uuid.UUID, reason *string) (*entities.ModerationResult, error)
}

func (s *moderationServiceStub) ListPendingRides(ctx context.Context) ([]*entities.RideSummary, error) {
	return s.pendingFn(ctx)
}

func (s *moderationServiceStub) ApproveRide(ctx context.Context, rideID uuid.UUID) (*entities.ModerationResult, error) {
	return s.approveFn(ctx, rideID)
}

func (s *moderationServiceStub) RejectRide(ctx context.Context, rideID uuid.UUID, reason *string) (*entities.ModerationResult, error) {
	return s.rejectFn(ctx, rideID, reason)
}

func adminRouter(members MemberService, rides ModerationService) *gin.Engine {
	h := NewAdminHandler(members, rides)
	r := gin.New()
	g := r.Group("/admin", asUser(uuid.New(), true))
	g.GET("/users", h.ListUsers)
	g.PATCH("/users/:id/verify", h.VerifyUser)
	g.PATCH("/users/:id/safety-rating", h.UpdateSafetyRating)
	g.GET("/rides/pending", h.ListPendingRides)
	g.PATCH("/rides/:id/approve", h.ApproveRide)
	g.PATCH("/rides/:id/reject", h.RejectRide)
	return r
}

func TestAdminHandler_ListUsers_ParsesQuery(t *testing.T) {
	r := adminRouter(&memberServiceStub{
		listFn: func(_ context.Context, filter entities.UserFilter, p utils.PaginationParams) ([]*entities.User, utils.PaginationMeta, error) {
			assert.Equal(t, "asha", filter.Search)
			require.NotNil(t, filter.Verified)
			assert.False(t, *filter.Verified)
			assert.Equal(t, 2, p.Page)
			assert.Equal(t, 5, p.Limit)
			return []*entities.User{{Name: "Asha"}}, utils.CalculateMeta(6, 2, 5), nil
		},
	}, nil)

	w := serve(r, newRequest(http.MethodGet, "/admin/users?search=%20asha%20&verified=false&page=2&limit=5"))

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Len(t, body["users"], 1)
	meta := body["meta"].(map[string]interface{})
	assert.EqualValues(t, 6, meta["totalCount"])
	assert.EqualValues(t, 2, meta["totalPages"])
}

func TestAdminHandler_ListUsers_BadQuery(t *testing.T) {
	r := adminRouter(&memberServiceStub{}, nil)

	w := serve(r, newRequest(http.MethodGet, "/admin/users?verified=maybe"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, newRequest(http.MethodGet, "/admin/users?page=abc"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminHandler_VerifyUser(t *testing.T) {
	verified := uuid.New()
	r := adminRouter(&memberServiceStub{
		verifyFn: func(_ context.Context, id uuid.UUID) (*entities.User, error) {
			if id == verified {
				return nil, domainerrors.Wrap(domainerrors.Conflict("User is already verified."), domainerrors.ErrAlreadyVerified)
			}
			return &entities.User{ID: id, IsVerified: true}, nil
		},
	}, nil)

	w := serve(r, newRequest(http.MethodPatch, "/admin/users/"+uuid.NewString()+"/verify"))
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "User verified successfully!", body["message"])
	assert.Equal(t, true, body["user"].(map[string]interface{})["isVerified"])

	w = serve(r, newRequest(http.MethodPatch, "/admin/users/"+verified.String()+"/verify"))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = serve(r, newRequest(http.MethodPatch, "/admin/users/xyz/verify"))
	assert.Equal(t, "Invalid user ID.", decode(t, w)["message"])
}

func TestAdminHandler_UpdateSafetyRating(t *testing.T) {
	r := adminRouter(&memberServiceStub{
		ratingFn: func(_ context.Context, id uuid.UUID, rating int) (*entities.User, error) {
			return &entities.User{ID: id, SafetyRating: null.IntFrom(rating)}, nil
		},
	}, nil)

	w := doJSON(t, r, http.MethodPatch, "/admin/users/"+uuid.NewString()+"/safety-rating", map[string]int{"safetyRating": 4})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "User safety rating updated successfully!", body["message"])
	assert.EqualValues(t, 4, body["user"].(map[string]interface{})["safetyRating"])

	w = doJSON(t, r, http.MethodPatch, "/admin/users/"+uuid.NewString()+"/safety-rating", map[string]int{"safetyRating": 9})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Must be at most 5.", decode(t, w)["errors"].(map[string]interface{})["safetyRating"])
}

func TestAdminHandler_ApproveRide(t *testing.T) {
	id := uuid.New()
	r := adminRouter(nil, &moderationServiceStub{
		approveFn: func(_ context.Context, rideID uuid.UUID) (*entities.ModerationResult, error) {
			return &entities.ModerationResult{ID: rideID, Name: "Coastal Run", Status: entities.RideStatusUpcoming}, nil
		},
	})

	w := serve(r, newRequest(http.MethodPatch, "/admin/rides/"+id.String()+"/approve"))

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Ride approved successfully!", body["message"])
	assert.Equal(t, "Upcoming", body["ride"].(map[string]interface{})["status"])
}

func TestAdminHandler_ApproveRide_NotPending(t *testing.T) {
	r := adminRouter(nil, &moderationServiceStub{
		approveFn: func(context.Context, uuid.UUID) (*entities.ModerationResult, error) {
			return nil, domainerrors.Wrap(domainerrors.BadRequest("Ride is not pending approval. Current status: Upcoming"), domainerrors.ErrRideNotPending)
		},
	})

	w := serve(r, newRequest(http.MethodPatch, "/admin/rides/"+uuid.NewString()+"/approve"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Ride is not pending approval. Current status: Upcoming", decode(t, w)["message"])
}

func TestAdminHandler_RejectRide_OptionalReason(t *testing.T) {
	var reasons []*string
	r := adminRouter(nil, &moderationServiceStub{
		rejectFn: func(_ context.Context, rideID uuid.UUID, reason *string) (*entities.ModerationResult, error) {
			reasons = append(reasons, reason)
			return &entities.ModerationResult{ID: rideID, Status: entities.RideStatusRejected}, nil
		},
	})

	w := doJSON(t, r, http.MethodPatch, "/admin/rides/"+uuid.NewString()+"/reject", map[string]string{"reason": "Route unsafe"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ride rejected successfully!", decode(t, w)["message"])

	w = serve(r, newRequest(http.MethodPatch, "/admin/rides/"+uuid.NewString()+"/reject"))
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, reasons, 2)
	require.NotNil(t, reasons[0])
	assert.Equal(t, "Route unsafe", *reasons[0])
	assert.Nil(t, reasons[1])
}

func TestAdminHandler_ListPendingRides(t *testing.T) {
	r := adminRouter(nil, &moderationServiceStub{
		pendingFn: func(context.Context) ([]*entities.RideSummary, error) {
			return []*entities.RideSummary{}, nil
		},
	})

	w := serve(r, newRequest(http.MethodGet, "/admin/rides/pending"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
