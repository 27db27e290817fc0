package getFutureBookings

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"roomBooker/internal/booking"
	"roomBooker/internal/lib/api/response"
	"roomBooker/internal/lib/clock"
	"roomBooker/internal/lib/logger/sl"
	"roomBooker/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type FutureBookingsResponse struct {
	response.Response
	Bookings []models.PublicBooking `json:"bookings"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=FutureBookingsGetter
type FutureBookingsGetter interface {
	ListFutureRoomBookings(ctx context.Context, roomID int64, now time.Time) ([]models.PublicBooking, error)
}

func New(log *slog.Logger, getter FutureBookingsGetter, clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.room.getFutureBookings.New"

		log := log.With(slog.String("op", op))

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

		bookings, err := getter.ListFutureRoomBookings(r.Context(), roomID, clk.Now())
		if err != nil {
			if errors.Is(err, booking.ErrRoomNotFound) {
				log.Info("room not found")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("room not found"))
				return
			}

			log.Error("failed to get room bookings", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get room bookings"))
			return
		}

		log.Info("future bookings received", slog.Int("count", len(bookings)))

		responseOK(w, r, bookings)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, bookings []models.PublicBooking) {
	if bookings == nil {
		bookings = []models.PublicBooking{}
	}

	render.JSON(w, r, FutureBookingsResponse{
		Response: response.OK(),
		Bookings: bookings,
	})
}
