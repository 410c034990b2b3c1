package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/seva/internal/config"
	"github.com/seva/internal/handler"
	"github.com/seva/internal/model"
	"github.com/seva/internal/payment"
	"github.com/seva/internal/service"
	"github.com/seva/internal/service/servicetest"
	"github.com/seva/internal/storage/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testSecret    = "router-test-secret"
	paymentSecret = "secret"
	adminID       = "11111111-1111-1111-1111-111111111111"
	devoteeID     = "33333333-3333-3333-3333-333333333333"
	devoteePhone  = "9000000002"
	sevaID        = "44444444-4444-4444-4444-444444444444"
)

type testServer struct {
	router   http.Handler
	tokens   *service.TokenService
	users    *servicetest.Users
	rooms    *servicetest.Rooms
	gateway  *servicetest.Gateway
	dispatch *servicetest.Dispatcher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	users := servicetest.NewUsers(
		&model.User{ID: adminID, PhoneNumber: "9000000001", Role: model.RoleAdmin},
		&model.User{ID: devoteeID, PhoneNumber: devoteePhone, FullName: "Lakshmi", Email: "lakshmi@example.com", Role: model.RoleUser},
	)
	catalog := servicetest.NewSevas(&model.Seva{
		ID:           sevaID,
		TitleEnglish: "Panchamrutha Abhisheka",
		Amount:       decimal.RequireFromString("501.00"),
		Category:     model.CategorySode,
		IsActive:     true,
	})
	rooms := servicetest.NewRooms()
	bookings := servicetest.NewSevaBookings()
	gateway := &servicetest.Gateway{}
	dispatch := &servicetest.Dispatcher{}
	feed := &servicetest.Feed{}
	tokens := service.NewTokenService(testSecret, 0)

	auth := service.NewAuthService(service.NewAuthenticator(memory.New(), 0), users, tokens, true)
	sevas := service.NewSevaBookingService(users, catalog, bookings, gateway, "rzp_test_key", paymentSecret, dispatch)
	roomSvc := service.NewRoomBookingService(rooms, users, dispatch)
	history := service.NewHistoryService(users, bookings, rooms)
	alankara := service.NewAlankaraService(&servicetest.Alankara{}, nil, feed, 0)
	content := service.NewContentService(&servicetest.Events{}, &servicetest.Gurus{}, &servicetest.Branches{}, &servicetest.Editorial{}, feed)
	volunteers := service.NewVolunteerService(users, servicetest.NewVolunteers(users), users)
	opportunities := service.NewVolunteerOpportunityService(users, servicetest.NewOpportunities())
	cfg := &config.Config{
		Razorpay: config.RazorpayConfig{KeyID: "rzp_test_key"},
		Push:     config.PushConfig{VAPIDPublicKey: "BPub"},
	}

	h := handler.Handlers{
		Auth:        handler.NewAuthHandler(auth),
		Booking:     handler.NewBookingHandler(sevas, roomSvc, history),
		Content:     handler.NewContentHandler(content, service.NewSearchService(nil, nil, nil)),
		Alankara:    handler.NewAlankaraHandler(alankara),
		User:        handler.NewUserHandler(volunteers),
		Opportunity: handler.NewOpportunityHandler(opportunities),
		Config:      handler.NewConfigHandler(cfg, false),
	}
	return &testServer{
		router:   handler.NewRouter(h, tokens, "*"),
		tokens:   tokens,
		users:    users,
		rooms:    rooms,
		gateway:  gateway,
		dispatch: dispatch,
	}
}

func (s *testServer) do(t *testing.T, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) token(t *testing.T, phone string, role model.Role) string {
	t.Helper()
	tok, err := s.tokens.Sign(phone, role)
	require.NoError(t, err)
	return tok
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestOTPLoginFlow(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/send-otp?phoneNumber=9000000100", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	sent := decode(t, rec)
	code, _ := sent["otp"].(string)
	require.Len(t, code, 6)

	rec = s.do(t, http.MethodPost, "/api/auth/verify-otp?phoneNumber=9000000100&otp="+code, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	verified := decode(t, rec)
	assert.Equal(t, true, verified["isNewUser"])
	token, _ := verified["token"].(string)
	require.NotEmpty(t, token)

	rec = s.do(t, http.MethodGet, "/api/auth/me", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/register", token, `{"fullName":"Ravi","email":"ravi@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/auth/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode(t, rec)
	assert.Equal(t, "Ravi", me["fullName"])
	assert.Equal(t, "9000000100", me["phoneNumber"])
}

func TestVerifyOTP_Rejected(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/auth/send-otp?phoneNumber=9000000200", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/verify-otp?phoneNumber=9000000200&otp=abcdef", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid OTP", decode(t, rec)["message"])
}

func TestSendOTP_MissingPhone(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/auth/send-otp", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Phone number is required", decode(t, rec)["message"])
}

func TestAdminRoutesGuarded(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/bookings/all", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/bookings/all", s.token(t, "9000000300", model.RoleUser), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/bookings/all", s.token(t, "9000000001", model.RoleAdmin), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBookRoom(t *testing.T) {
	s := newTestServer(t)
	tok := s.token(t, "9000000400", model.RoleUser)

	rec := s.do(t, http.MethodPost, "/api/bookings", tok,
		`{"checkInDate":"2026-11-05","checkOutDate":"2026-11-03","numberOfGuests":2,"numberOfRooms":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["message"], "check-out date")

	rec = s.do(t, http.MethodPost, "/api/bookings", tok,
		`{"checkInDate":"2026-11-03","checkOutDate":"2026-11-05","numberOfGuests":2,"numberOfRooms":1,"consentDataStorage":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Booking request submitted successfully.", body["message"])
	ref, _ := body["referenceId"].(string)
	require.NotEmpty(t, ref)

	b, err := s.rooms.GetByID(t.Context(), ref)
	require.NoError(t, err)
	assert.Equal(t, model.RoomPending, b.Status)
	assert.Equal(t, "9000000400", b.UserID)
}

func TestDecideRoom(t *testing.T) {
	s := newTestServer(t)
	user := s.token(t, "9000000500", model.RoleUser)
	admin := s.token(t, "9000000001", model.RoleAdmin)

	rec := s.do(t, http.MethodPost, "/api/bookings", user,
		`{"checkInDate":"2026-11-03","checkOutDate":"2026-11-04","numberOfGuests":1,"numberOfRooms":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	ref := decode(t, rec)["referenceId"].(string)

	rec = s.do(t, http.MethodPut, "/api/bookings/"+ref+"/reject", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Booking rejected successfully", decode(t, rec)["message"])

	rec = s.do(t, http.MethodPut, "/api/bookings/not-a-uuid/approve", admin, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["message"], "Failed to approve booking")
}

func TestAlankaraLatest_Empty(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/alankara/latest", "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestSearch_EmptyQuery(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/search?query=%20", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompleteSeva_UnknownBooking(t *testing.T) {
	s := newTestServer(t)
	tok := s.token(t, "9000000600", model.RoleUser)

	rec := s.do(t, http.MethodPost,
		"/api/bookings/seva/complete?bookingId=22222222-2222-2222-2222-222222222222&paymentId=pay_1&signature=abc", tok, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/bookings/seva/complete?bookingId=garbage&paymentId=pay_1&signature=abc", tok, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHistory_UnknownUser(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/bookings/history", s.token(t, "9000000700", model.RoleUser), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublicConfig(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/config", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "rzp_test_key", body["razorpayKeyId"])
	assert.Equal(t, false, body["pushEnabled"])
	_, hasKey := body["vapidPublicKey"]
	assert.False(t, hasKey)
}

func TestSevaCheckout(t *testing.T) {
	s := newTestServer(t)
	tok := s.token(t, devoteePhone, model.RoleUser)
	s.gateway.On("CreateOrder", mock.Anything, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString("501"))
	})).Return("order_http_1", nil).Once()

	rec := s.do(t, http.MethodPost, "/api/bookings/seva/initiate", tok,
		`{"sevaId":"`+sevaID+`","sevaDate":"2026-11-02T06:00:00Z","devoteeName":"Lakshmi"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	s.gateway.AssertExpectations(t)
	body := decode(t, rec)
	assert.Equal(t, "rzp_test_key", body["razorpayKeyId"])
	booking, _ := body["booking"].(map[string]any)
	require.NotNil(t, booking)
	assert.Equal(t, "order_http_1", booking["razorpayOrderId"])
	assert.Equal(t, "PENDING", booking["status"])
	bookingID, _ := booking["id"].(string)
	require.NotEmpty(t, bookingID)

	sig := payment.Signature("order_http_1", "pay_http_1", paymentSecret)
	rec = s.do(t, http.MethodPost,
		"/api/bookings/seva/complete?bookingId="+bookingID+"&paymentId=pay_http_1&signature="+sig, tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	done := decode(t, rec)
	assert.Equal(t, "CONFIRMED", done["status"])
	assert.Equal(t, "PAID", done["paymentStatus"])
	assert.Equal(t, "pay_http_1", done["razorpayPaymentId"])
	assert.Equal(t, []string{"lakshmi@example.com|Seva Booking Confirmed - Panchamrutha Abhisheka"}, s.dispatch.Emails)

	rec = s.do(t, http.MethodPost,
		"/api/bookings/seva/complete?bookingId="+bookingID+"&paymentId=pay_http_1&signature=deadbeef", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "FAILED", decode(t, rec)["status"])
}

func TestInitiateSeva_GatewayDown(t *testing.T) {
	s := newTestServer(t)
	s.gateway.On("CreateOrder", mock.Anything, mock.Anything).Return("", payment.ErrGateway).Once()

	rec := s.do(t, http.MethodPost, "/api/bookings/seva/initiate", s.token(t, devoteePhone, model.RoleUser),
		`{"sevaId":"`+sevaID+`","sevaDate":"2026-11-02T06:00:00Z"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "payment gateway unavailable", decode(t, rec)["error"])

	rec = s.do(t, http.MethodGet, "/api/bookings/history", s.token(t, devoteePhone, model.RoleUser), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode(t, rec)["sevaHistory"])
}

func TestAdminContentEditing(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, "9000000001", model.RoleAdmin)

	rec := s.do(t, http.MethodPost, "/api/admin/events", admin, `{"title":"Paryaya","date":"2026-01-18"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode(t, rec)["id"].(float64)
	path := "/api/admin/events/" + strconv.FormatInt(int64(id), 10)

	rec = s.do(t, http.MethodPut, path, admin, `{"title":"Paryaya Mahotsava","date":"2026-01-18","tithi":"Makara"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Paryaya Mahotsava", decode(t, rec)["title"])

	rec = s.do(t, http.MethodGet, "/api/admin/events", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	events := decodeList(t, rec)
	require.Len(t, events, 1)
	assert.Equal(t, "Makara", events[0]["tithi"])

	rec = s.do(t, http.MethodPut, "/api/admin/events/999", admin, `{"title":"x","date":"2026-01-18"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(t, http.MethodPut, path, s.token(t, devoteePhone, model.RoleUser), `{"title":"x","date":"2026-01-18"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/admin/timings", admin, `{"location":"Sode","darshanTime":"06:00-12:00"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	timingID := strconv.FormatInt(int64(decode(t, rec)["id"].(float64)), 10)
	rec = s.do(t, http.MethodPut, "/api/admin/timings/"+timingID, admin, `{"location":"Sode","isActive":false}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/content/timings", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeList(t, rec))
	rec = s.do(t, http.MethodGet, "/api/admin/timings", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeList(t, rec), 1)

	rec = s.do(t, http.MethodPost, "/api/admin/flash-updates", admin, `{"message":"Deepotsava","expiryDate":"2099-01-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	flashPath := "/api/admin/flash-updates/" + strconv.FormatInt(int64(decode(t, rec)["id"].(float64)), 10)
	rec = s.do(t, http.MethodDelete, flashPath, admin, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(t, http.MethodDelete, flashPath, admin, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminGalleryEditing(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, "9000000001", model.RoleAdmin)

	rec := s.do(t, http.MethodPost, "/api/admin/gallery/albums", admin, `{"title":"Paryaya 2026"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	albumPath := "/api/admin/gallery/albums/" + strconv.FormatInt(int64(decode(t, rec)["id"].(float64)), 10)

	rec = s.do(t, http.MethodPost, albumPath+"/media", admin, `{"type":"PHOTO","url":"/api/files/a.jpg"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	mediaID := strconv.FormatInt(int64(decode(t, rec)["id"].(float64)), 10)

	rec = s.do(t, http.MethodPut, albumPath, admin, `{"title":"Paryaya Mahotsava 2026"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Paryaya Mahotsava 2026", decode(t, rec)["title"])

	rec = s.do(t, http.MethodDelete, "/api/admin/gallery/media/"+mediaID, admin, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(t, http.MethodGet, albumPath+"/media", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeList(t, rec))

	rec = s.do(t, http.MethodDelete, albumPath, admin, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(t, http.MethodPut, albumPath, admin, `{"title":"gone"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVolunteerOpportunities(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, "9000000001", model.RoleAdmin)
	user := s.token(t, devoteePhone, model.RoleUser)

	rec := s.do(t, http.MethodPost, "/api/volunteer-opportunities", user, `{"title":"Annadana kitchen"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/volunteer-opportunities", admin, `{"title":"Annadana kitchen","requiredSkills":"cooking"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	oppID := decode(t, rec)["id"].(string)

	rec = s.do(t, http.MethodGet, "/api/volunteer-opportunities", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeList(t, rec), 1)

	rec = s.do(t, http.MethodPost, "/api/volunteer-opportunities/"+oppID+"/apply", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/volunteer-opportunities/"+oppID+"/apply", user, "")
	require.Equal(t, http.StatusOK, rec.Code)
	app := decode(t, rec)
	assert.Equal(t, "PENDING", app["status"])
	appID := app["id"].(string)

	rec = s.do(t, http.MethodPost, "/api/volunteer-opportunities/"+oppID+"/apply", user, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/volunteer-opportunities/my-applications", user, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeList(t, rec), 1)

	rec = s.do(t, http.MethodPut, "/api/volunteer-opportunities/applications/"+appID+"/status?status=APPROVED", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "APPROVED", decode(t, rec)["status"])
	rec = s.do(t, http.MethodPut, "/api/volunteer-opportunities/applications/"+appID+"/status?status=MAYBE", admin, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/volunteer-opportunities/"+oppID+"/applications", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	apps := decodeList(t, rec)
	require.Len(t, apps, 1)
	assert.Equal(t, "APPROVED", apps[0]["status"])

	rec = s.do(t, http.MethodPut, "/api/volunteer-opportunities/"+oppID, admin, `{"title":"Annadana kitchen","status":"CLOSED"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["applicationCount"])

	rec = s.do(t, http.MethodGet, "/api/volunteer-opportunities", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeList(t, rec))
	rec = s.do(t, http.MethodGet, "/api/volunteer-opportunities/all", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeList(t, rec), 1)

	rec = s.do(t, http.MethodDelete, "/api/volunteer-opportunities/"+oppID, admin, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLegacyAliases(t *testing.T) {
	s := newTestServer(t)
	user := s.token(t, devoteePhone, model.RoleUser)
	admin := s.token(t, "9000000001", model.RoleAdmin)

	rec := s.do(t, http.MethodPost, "/api/bookings/room", user,
		`{"checkInDate":"2026-11-03","checkOutDate":"2026-11-04","numberOfGuests":1,"numberOfRooms":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/bookings/room/user/"+devoteeID, user, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeList(t, rec), 1)
	rec = s.do(t, http.MethodGet, "/api/bookings/seva/user/"+devoteeID, user, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeList(t, rec))
	rec = s.do(t, http.MethodGet, "/api/bookings/room/user/"+adminID, user, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/bookings/room/user/"+devoteeID, admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeList(t, rec), 1)

	rec = s.do(t, http.MethodPost, "/api/volunteers/register", user, `{"hobbiesOrTalents":"singing"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/volunteers/user/"+devoteeID, user, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "singing", decode(t, rec)["hobbiesOrTalents"])

	rec = s.do(t, http.MethodGet, "/api/admin/daily-alankara/latest", admin, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/admin/daily-alankara", admin, `{"imageUrl":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
