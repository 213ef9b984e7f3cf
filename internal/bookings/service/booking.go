package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"classbook/internal/bookings/events"
	"classbook/internal/bookings/validator"
	"classbook/pkg/blob"
	"classbook/pkg/config"
	apperrors "classbook/pkg/errors"
	"classbook/pkg/model"
)

const (
	// DefaultMaxSpots applies when a class is created without a positive
	// capacity in the payload.
	DefaultMaxSpots = 12

	// maxCreateRetries bounds the read-modify-write loop when concurrent
	// bookings for the same class collide on the version check.
	maxCreateRetries = 3
)

type BookingService interface {
	// GetAvailability never fails: store errors degrade to the all-zero
	// response so the availability widget keeps working.
	GetAvailability(ctx context.Context, classID string) *model.Availability
	ListAll(ctx context.Context, adminKey string) (map[string]*model.ClassRecord, error)
	Create(ctx context.Context, req *model.BookingRequest) (*model.BookingConfirmation, error)
	DeleteOne(ctx context.Context, classID, adminKey string) error
	ResetAll(ctx context.Context, adminKey string) (int, error)
}

type bookingService struct {
	store     blob.Store
	validator *validator.BookingValidator
	publisher *events.Publisher
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	store blob.Store,
	bookingValidator *validator.BookingValidator,
	publisher *events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		store:     store,
		validator: bookingValidator,
		publisher: publisher,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *bookingService) GetAvailability(ctx context.Context, classID string) *model.Availability {
	availability := &model.Availability{ClassID: classID}

	var record model.ClassRecord
	if _, err := s.store.Get(ctx, classID, &record); err != nil {
		if !errors.Is(err, blob.ErrNotFound) {
			s.cfg.Log.Warn("Availability read failed, reporting zero spots",
				"class_id", classID,
				"error", err,
			)
		}
		return availability
	}

	availability.Booked = len(record.Bookings)
	availability.MaxSpots = record.MaxSpots
	// Raw subtraction: a corrupted record with more bookings than spots
	// reports negative availability rather than hiding the corruption.
	availability.Available = record.MaxSpots - len(record.Bookings)
	return availability
}

func (s *bookingService) ListAll(ctx context.Context, adminKey string) (map[string]*model.ClassRecord, error) {
	if err := s.checkAdminKey(adminKey); err != nil {
		return nil, err
	}

	records := make(map[string]*model.ClassRecord)

	keys, err := s.store.List(ctx)
	if err != nil {
		s.cfg.Log.Warn("Listing bookings failed, returning empty result", "error", err)
		return records, nil
	}

	for _, key := range keys {
		var record model.ClassRecord
		if _, err := s.store.Get(ctx, key, &record); err != nil {
			s.cfg.Log.Warn("Reading record failed, returning empty result",
				"class_id", key,
				"error", err,
			)
			return make(map[string]*model.ClassRecord), nil
		}
		records[key] = &record
	}
	return records, nil
}

func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.BookingConfirmation, error) {
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.InvalidInput(err.Error())
	}

	email := strings.ToLower(req.Email)

	for attempt := 0; attempt < maxCreateRetries; attempt++ {
		record, version, err := s.fetchOrCreateRecord(ctx, req)
		if err != nil {
			return nil, err
		}

		// Duplicate check precedes the capacity check: a repeat
		// submission on a full class must read as "already booked".
		for _, booking := range record.Bookings {
			if strings.EqualFold(booking.Email, email) {
				return nil, apperrors.Conflict("You are already booked for this class!")
			}
		}

		if len(record.Bookings) >= record.MaxSpots {
			return nil, apperrors.Conflict("This class is sold out.")
		}

		record.Bookings = append(record.Bookings, model.Booking{
			Name:     req.Name,
			Email:    email,
			Phone:    req.Phone,
			BookedAt: s.now(),
		})

		err = s.store.CompareAndSet(ctx, req.ClassID, record, version)
		if errors.Is(err, blob.ErrVersionConflict) {
			s.cfg.Log.Debug("Concurrent booking detected, retrying",
				"class_id", req.ClassID,
				"attempt", attempt+1,
			)
			continue
		}
		if err != nil {
			s.cfg.Log.Error("Failed to persist booking", "class_id", req.ClassID, "error", err)
			return nil, apperrors.Internal("Failed to save the booking", err)
		}

		booked := len(record.Bookings)
		s.cfg.Log.Info("Booking created",
			"class_id", req.ClassID,
			"booked", booked,
			"max_spots", record.MaxSpots,
		)
		s.publisher.Publish(ctx, events.TypeBookingCreated, req.ClassID, booked)

		remaining := record.MaxSpots - booked
		return &model.BookingConfirmation{
			Message:  fmt.Sprintf("Booking confirmed! Spots remaining: %d", remaining),
			Booked:   booked,
			MaxSpots: record.MaxSpots,
		}, nil
	}

	return nil, apperrors.Conflict("This class is being booked by someone else right now, please try again.")
}

// fetchOrCreateRecord reads the class record, or builds a fresh one from the
// payload when no booking was ever made for the class. Descriptive fields
// and capacity are only ever taken from the first booking's payload.
func (s *bookingService) fetchOrCreateRecord(ctx context.Context, req *model.BookingRequest) (*model.ClassRecord, int64, error) {
	var record model.ClassRecord
	version, err := s.store.Get(ctx, req.ClassID, &record)
	if err == nil {
		return &record, version, nil
	}
	if !errors.Is(err, blob.ErrNotFound) {
		s.cfg.Log.Error("Failed to read class record", "class_id", req.ClassID, "error", err)
		return nil, 0, apperrors.Internal("Failed to read the class record", err)
	}

	maxSpots := req.MaxSpots
	if maxSpots <= 0 {
		maxSpots = DefaultMaxSpots
	}
	return &model.ClassRecord{
		ClassID:   req.ClassID,
		ClassName: req.ClassName,
		Day:       req.Day,
		Time:      req.Time,
		Location:  req.Location,
		MaxSpots:  maxSpots,
		Bookings:  []model.Booking{},
	}, 0, nil
}

func (s *bookingService) DeleteOne(ctx context.Context, classID, adminKey string) error {
	if err := s.checkAdminKey(adminKey); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, classID); err != nil {
		s.cfg.Log.Error("Failed to delete class record", "class_id", classID, "error", err)
		return apperrors.Internal("Failed to reset the class", err)
	}

	s.cfg.Log.Info("Class record deleted", "class_id", classID)
	s.publisher.Publish(ctx, events.TypeClassDeleted, classID, 0)
	return nil
}

// ResetAll deletes every record sequentially, best-effort: a failing key is
// logged and skipped so one bad record cannot block wiping the rest.
func (s *bookingService) ResetAll(ctx context.Context, adminKey string) (int, error) {
	if err := s.checkAdminKey(adminKey); err != nil {
		return 0, err
	}

	keys, err := s.store.List(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list class records for reset", "error", err)
		return 0, apperrors.Internal("Failed to reset bookings", err)
	}

	deleted := 0
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			s.cfg.Log.Warn("Failed to delete class record during reset",
				"class_id", key,
				"error", err,
			)
			continue
		}
		deleted++
	}

	s.cfg.Log.Info("All bookings reset", "deleted", deleted, "total", len(keys))
	s.publisher.Publish(ctx, events.TypeBookingsReset, "", 0)
	return deleted, nil
}

func (s *bookingService) checkAdminKey(adminKey string) error {
	if subtle.ConstantTimeCompare([]byte(adminKey), []byte(s.cfg.AdminKey)) != 1 {
		return apperrors.Unauthorized("Not authorized")
	}
	return nil
}
