package createBooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"roomBooker/internal/booking"
	"roomBooker/internal/http-server/middleware/auth"
	"roomBooker/internal/lib/api/response"
	"roomBooker/internal/lib/clock"
	"roomBooker/internal/lib/date"
	"roomBooker/internal/lib/logger/sl"
	"roomBooker/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

// BookingRequest carries dates as strings so a malformed date is reported
// against its field. Guests are checked by the booking rules after the dates.
type BookingRequest struct {
	CheckIn  string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
	Guests   int    `json:"guests"`
}

type BookingResponse struct {
	response.Response
	Booking models.PublicBooking `json:"booking"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCreator
type BookingCreator interface {
	CreateRoomBooking(ctx context.Context, req booking.RoomBookingRequest, now time.Time) (*models.Booking, error)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

func New(log *slog.Logger, creator BookingCreator, clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.room.createBooking.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		roomIDStr := chi.URLParam(r, "id")
		if roomIDStr == "" {
			log.Error("room id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("room id is required"))
			return
		}

		roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
		if err != nil || roomID <= 0 {
			log.Error("invalid room id format", slog.String("room_id", roomIDStr))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid room id format"))
			return
		}

		log = log.With(slog.Int64("room_id", roomID))

		userID, ok := auth.UserID(r.Context())
		if !ok {
			log.Info("anonymous booking attempt")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication credentials were not provided"))
			return
		}

		var req BookingRequest

		err = render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validate.Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Info("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}

			log.Error("failed to validate request", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create booking"))
			return
		}

		checkIn, err := date.Parse(req.CheckIn)
		if err != nil {
			log.Info("invalid check-in date", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.FieldError(booking.FieldCheckIn, err.Error()))
			return
		}

		checkOut, err := date.Parse(req.CheckOut)
		if err != nil {
			log.Info("invalid check-out date", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.FieldError(booking.FieldCheckOut, err.Error()))
			return
		}

		created, err := creator.CreateRoomBooking(r.Context(), booking.RoomBookingRequest{
			RoomID:   roomID,
			UserID:   userID,
			CheckIn:  checkIn,
			CheckOut: checkOut,
			Guests:   req.Guests,
		}, clk.Now())
		if err != nil {
			var fieldErr *booking.FieldError

			switch {
			case errors.Is(err, booking.ErrRoomNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("room not found"))
			case errors.Is(err, booking.ErrUserNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("user not found"))
			case errors.As(err, &fieldErr):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.FieldError(fieldErr.Field, fieldErr.Err.Error()))
			case errors.Is(err, booking.ErrDateConflict):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(booking.ErrDateConflict.Error()))
			default:
				log.Error("failed to create booking", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to create booking"))
			}
			return
		}

		log.Info("room booked", slog.Int64("booking_id", created.ID))

		responseCreated(w, r, created)
	}
}

func responseCreated(w http.ResponseWriter, r *http.Request, b *models.Booking) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, BookingResponse{
		Response: response.OK(),
		Booking:  b.Public(),
	})
}
