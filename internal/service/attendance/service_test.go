package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoattend/attendance-backend-go/internal/domain/attendance"
	"github.com/geoattend/attendance-backend-go/internal/domain/geofence"
	"github.com/geoattend/attendance-backend-go/internal/domain/schedule"
	"github.com/geoattend/attendance-backend-go/internal/pkg/keylock"
	scheduleservice "github.com/geoattend/attendance-backend-go/internal/service/schedule"
)

const testCompanyID = "company-1"

// ===== FAKES =====

type fakeAttendanceRepo struct {
	records map[string]attendance.DailyRecord
	events  []attendance.Event
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.DailyRecord)}
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time, _ string) (*attendance.DailyRecord, error) {
	rec, ok := f.records[attendance.DateKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	copied := rec
	return &copied, nil
}

func (f *fakeAttendanceRepo) CreateWithEvent(_ context.Context, rec attendance.DailyRecord, ev attendance.Event) (attendance.DailyRecord, error) {
	rec.CreatedAt = time.Now().UTC()
	rec.UpdatedAt = rec.CreatedAt
	f.records[attendance.DateKey(rec.EmployeeID, rec.Date)] = rec
	f.events = append(f.events, ev)
	return rec, nil
}

func (f *fakeAttendanceRepo) UpdateWithEvent(_ context.Context, rec attendance.DailyRecord, ev attendance.Event) (attendance.DailyRecord, error) {
	rec.UpdatedAt = time.Now().UTC()
	f.records[attendance.DateKey(rec.EmployeeID, rec.Date)] = rec
	f.events = append(f.events, ev)
	return rec, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, rec attendance.DailyRecord) error {
	f.records[attendance.DateKey(rec.EmployeeID, rec.Date)] = rec
	return nil
}

func (f *fakeAttendanceRepo) ListByEmployeeRange(_ context.Context, employeeID string, from, to time.Time, _ string) ([]attendance.DailyRecord, error) {
	var out []attendance.DailyRecord
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && !rec.Date.Before(from) && !rec.Date.After(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByMonth(_ context.Context, employeeID string, year int, month time.Month, _ string) ([]attendance.DailyRecord, error) {
	var out []attendance.DailyRecord
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && rec.Date.Year() == year && rec.Date.Month() == month {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListUncorrelated(_ context.Context, _ string, since time.Time) ([]attendance.DailyRecord, error) {
	var out []attendance.DailyRecord
	for _, rec := range f.records {
		if rec.CheckInTime != nil && rec.DeviceID != nil && rec.DoorUnlockTime == nil && !rec.Date.Before(since) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListEvents(_ context.Context, employeeID string, from, to time.Time, _ string) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, ev := range f.events {
		if ev.EmployeeID == employeeID && !ev.Timestamp.Before(from) && !ev.Timestamp.After(to) {
			out = append(out, ev)
		}
	}
	return out, nil
}

type fakeScheduleRepo struct {
	ws *schedule.WorkSchedule
}

func (f *fakeScheduleRepo) GetByCompany(context.Context, string) (schedule.WorkSchedule, error) {
	if f.ws == nil {
		return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
	}
	return *f.ws, nil
}

func (f *fakeScheduleRepo) Upsert(_ context.Context, ws schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	f.ws = &ws
	return ws, nil
}

type fakeGeoValidator struct {
	result geofence.Result
}

func (f *fakeGeoValidator) Validate(_ context.Context, _ string, lat, lon *float64) (geofence.Result, error) {
	if lat == nil || lon == nil {
		return geofence.Result{MissingCoordinate: true, RejectOffsite: f.result.RejectOffsite}, nil
	}
	return f.result, nil
}

func (f *fakeGeoValidator) Get(context.Context, string) (geofence.Config, error) {
	return geofence.Config{}, geofence.ErrGeofenceNotFound
}

func (f *fakeGeoValidator) Update(context.Context, string, geofence.UpdateGeofenceRequest) (geofence.GeofenceResponse, error) {
	return geofence.GeofenceResponse{}, nil
}

func newTestService(repo *fakeAttendanceRepo, ws schedule.WorkSchedule, geo geofence.Result) attendance.Service {
	resolver := scheduleservice.NewScheduleResolver(&fakeScheduleRepo{ws: &ws})
	return NewAttendanceService(repo, resolver, &fakeGeoValidator{result: geo}, keylock.New(), DefaultLockWait, nil)
}

func dhakaSchedule() schedule.WorkSchedule {
	return schedule.WorkSchedule{
		CompanyID:                 testCompanyID,
		StartTime:                 "09:00",
		EndTime:                   "17:00",
		Timezone:                  "Asia/Dhaka",
		SuperLateThresholdMinutes: 30,
	}
}

func insideGeo() geofence.Result {
	return geofence.Result{Inside: true, DistanceMeters: 12}
}

func ptr[T any](v T) *T { return &v }

// ===== CLASSIFICATION =====

func TestClassify_Boundaries(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("Asia/Dhaka")
	require.NoError(t, err)

	ws := dhakaSchedule()
	dayStart := time.Date(2024, 3, 10, 9, 0, 0, 0, loc)
	res := schedule.Resolved{
		Schedule: ws,
		Location: loc,
		DayStart: dayStart,
	}

	tests := []struct {
		name        string
		at          time.Time
		wantStatus  attendance.Status
		wantMinutes int
	}{
		{"ten minutes early", dayStart.Add(-10 * time.Minute), attendance.StatusPresent, 0},
		{"exactly on time", dayStart, attendance.StatusPresent, 0},
		{"one minute late", dayStart.Add(1 * time.Minute), attendance.StatusLate, 1},
		{"exactly at threshold", dayStart.Add(30 * time.Minute), attendance.StatusLate, 30},
		{"one second past threshold", dayStart.Add(30*time.Minute + time.Second), attendance.StatusSuperLate, 30},
		{"an hour late", dayStart.Add(time.Hour), attendance.StatusSuperLate, 60},
		{"partial minute floors", dayStart.Add(5*time.Minute + 59*time.Second), attendance.StatusLate, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, minutes := Classify(res, tc.at.UTC())
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantMinutes, minutes)
		})
	}
}

// ===== CHECK-IN =====

func TestAttendanceService_CheckIn_Present(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, dhakaSchedule(), insideGeo())

	// 08:45 Dhaka time is 02:45 UTC.
	resp, err := svc.CheckIn(ctx, testCompanyID, attendance.CheckInRequest{
		EmployeeID: "EMP-1",
		Timestamp:  time.Date(2024, 3, 11, 2, 45, 0, 0, time.UTC),
		Source:     attendance.SourceGPSPunch,
		Latitude:   ptr(23.78),
		Longitude:  ptr(90.40),
	})

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	assert.Equal(t, 0, resp.LateMinutes)
	assert.Equal(t, "2024-03-11", resp.Date)
	assert.False(t, resp.NeedsReview)
	assert.Len(t, repo.events, 1)
}

func TestAttendanceService_CheckIn_LocalDateCrossesUTCMidnight(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, dhakaSchedule(), insideGeo())

	// 2024-03-10T20:30Z is already 02:30 on March 11 in Dhaka: the
	// record must bucket into the local day, not the UTC one.
	resp, err := svc.CheckIn(ctx, testCompanyID, attendance.CheckInRequest{
		EmployeeID: "EMP-1",
		Timestamp:  time.Date(2024, 3, 10, 20, 30, 0, 0, time.UTC),
		Source:     attendance.SourceGPSPunch,
		Latitude:   ptr(23.78),
		Longitude:  ptr(90.40),
	})

	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", resp.Date)
}

func TestAttendanceService_CheckIn_Late(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, dhakaSchedule(), insideGeo())

	// 09:20 Dhaka time is 03:20 UTC, 20 minutes past the 09:00 start.
	resp, err := svc.CheckIn(ctx, testCompanyID, attendance.CheckInRequest{
		EmployeeID: "EMP-1",
		Timestamp:  time.Date(2024, 3, 11, 3, 20, 0, 0, time.UTC),
		Source:     attendance.SourceGPSPunch,
		Latitude:   ptr(23.78),
		Longitude:  ptr(90.40),
		LateReason: ptr("traffic"),
	})

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusLate), resp.Status)
	assert.Equal(t, 20, resp.LateMinutes)
	require.NotNil(t, resp.LateReason)
	assert.Equal(t, "traffic", *resp.LateReason)
}

func TestAttendanceService_CheckIn_Duplicate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, dhakaSchedule(), insideGeo())

	req := attendance.CheckInRequest{
		EmployeeID: "EMP-1",
		Timestamp:  time.Date(2024, 3, 11, 3, 0, 0, 0, time.UTC),
		Source:     attendance.SourceGPSPunch,
		Latitude:   ptr(23.78),
		Longitude:  ptr(90.40),
	}

	_, err := svc.CheckIn(ctx, testCompanyID, req)
	require.NoError(t, err)

	req.Timestamp = req.Timestamp.Add(10 * time.Minute)
	_, err = svc.CheckIn(ctx, testCompanyID, req)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	assert.Len(t, repo.events, 1)
}

func TestAttendanceService_CheckIn_OffsiteFlagged(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, dhakaSchedule(), geofence.Result{
		Inside:         false,
		DistanceMeters: 420,
		RejectOffsite:  false,
	})

	resp, err := svc.CheckIn(ctx, testCompanyID, attendance.CheckInRequest{
		EmployeeID: "EMP-1",
		Timestamp:  time.Date(2024, 3, 11, 3, 0, 0, 0, time.UTC),
		Source:     attendance.SourceGPSPunch,
		Latitude:   ptr(23.90),
		Longitude:  ptr(90.50),
	})

	require.NoError(t, err)
	assert.True(t, resp.NeedsReview)
}

func TestAttendanceService_CheckIn_OffsiteRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, dhakaSchedule(), geofence.Result{
		Inside:         false,
		DistanceMeters: 420,
		RejectOffsite:  true,
	})

	_, err := svc.CheckIn(ctx, testCompanyID, attendance.CheckInRequest{
		EmployeeID: "EMP-1",
		Timestamp:  time.Date(2024, 3, 11, 3, 0, 0, 0, time.UTC),
		Source:     attendance.SourceGPSPunch,
		Latitude:   ptr(23.90),
		Longitude:  ptr(90.50),
	})

	assert.ErrorIs(t, err, attendance.ErrOutsideGeofence)
	assert.Empty(t, repo.records)
}

func TestAttendanceService_CheckIn_MissingCoordinatesFlagged(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, dhakaSchedule(), geofence.Result{RejectOffsite: true})

	// No coordinates: even under a reject policy the punch is accepted
	// and flagged, never rejected.
	resp, err := svc.CheckIn(ctx, testCompanyID, attendance.CheckInRequest{
		EmployeeID: "EMP-1",
		Timestamp:  time.Date(2024, 3, 11, 3, 0, 0, 0, time.UTC),
		Source:     attendance.SourceGPSPunch,
	})

	require.NoError(t, err)
	assert.True(t, resp.NeedsReview)
}

func TestAttendanceService_CheckIn_HardwareSkipsGeofence(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, dhakaSchedule(), geofence.Result{RejectOffsite: true})

	resp, err := svc.CheckIn(ctx, testCompanyID, attendance.CheckInRequest{
		EmployeeID: "EMP-1",
		Timestamp:  time.Date(2024, 3, 11, 3, 0, 0, 0, time.UTC),
		Source:     attendance.SourceDeviceHardware,
		DeviceID:   ptr("door-1"),
	})

	require.NoError(t, err)
	assert.False(t, resp.NeedsReview)
	assert.Equal(t, string(attendance.SourceDeviceHardware), resp.Source)
}

func TestAttendanceService_CheckIn_AdminOverwrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, dhakaSchedule(), insideGeo())

	// Employee checks in super late.
	_, err := svc.CheckIn(ctx, testCompanyID, attendance.CheckInRequest{
		EmployeeID: "EMP-1",
		Timestamp:  time.Date(2024, 3, 11, 4, 0, 0, 0, time.UTC),
		Source:     attendance.SourceGPSPunch,
		Latitude:   ptr(23.78),
		Longitude:  ptr(90.40),
	})
	require.NoError(t, err)

	// Admin corrects the record to an on-time check-in.
	resp, err := svc.CheckIn(ctx, testCompanyID, attendance.CheckInRequest{
		EmployeeID: "EMP-1",
		Timestamp:  time.Date(2024, 3, 11, 2, 55, 0, 0, time.UTC),
		Source:     attendance.SourceManualAdmin,
		Latitude:   ptr(23.78),
		Longitude:  ptr(90.40),
	})

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	assert.Equal(t, 0, resp.LateMinutes)
	assert.True(t, resp.IsCorrection)
	// Both the original punch and the correction remain in the trail.
	assert.Len(t, repo.events, 2)
}

// ===== CHECK-OUT =====

func TestAttendanceService_CheckOut_Normal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, dhakaSchedule(), insideGeo())

	_, err := svc.CheckIn(ctx, testCompanyID, attendance.CheckInRequest{
		EmployeeID: "EMP-1",
		Timestamp:  time.Date(2024, 3, 11, 3, 10, 0, 0, time.UTC),
		Source:     attendance.SourceGPSPunch,
		Latitude:   ptr(23.78),
		Longitude:  ptr(90.40),
	})
	require.NoError(t, err)

	resp, err := svc.CheckOut(ctx, testCompanyID, attendance.CheckOutRequest{
		EmployeeID: "EMP-1",
		Timestamp:  time.Date(2024, 3, 11, 11, 5, 0, 0, time.UTC),
		Source:     attendance.SourceGPSPunch,
		Latitude:   ptr(23.78),
		Longitude:  ptr(90.40),
	})

	require.NoError(t, err)
	require.NotNil(t, resp.CheckOutTime)
	// Checkout never reclassifies the morning's status.
	assert.Equal(t, string(attendance.StatusLate), resp.Status)
	assert.Equal(t, 10, resp.LateMinutes)
	assert.False(t, resp.IsEmergencyCheckout)
}

func TestAttendanceService_CheckOut_NoActiveCheckIn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, dhakaSchedule(), insideGeo())

	_, err := svc.CheckOut(ctx, testCompanyID, attendance.CheckOutRequest{
		EmployeeID: "EMP-1",
		Timestamp:  time.Date(2024, 3, 11, 11, 0, 0, 0, time.UTC),
		Source:     attendance.SourceGPSPunch,
	})

	assert.ErrorIs(t, err, attendance.ErrNoActiveCheckIn)
}

func TestAttendanceService_CheckOut_AlreadyCheckedOut(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, dhakaSchedule(), insideGeo())

	checkOut := attendance.CheckOutRequest{
		EmployeeID: "EMP-1",
		Timestamp:  time.Date(2024, 3, 11, 11, 0, 0, 0, time.UTC),
		Source:     attendance.SourceGPSPunch,
		Latitude:   ptr(23.78),
		Longitude:  ptr(90.40),
	}

	_, err := svc.CheckIn(ctx, testCompanyID, attendance.CheckInRequest{
		EmployeeID: "EMP-1",
		Timestamp:  time.Date(2024, 3, 11, 3, 0, 0, 0, time.UTC),
		Source:     attendance.SourceGPSPunch,
		Latitude:   ptr(23.78),
		Longitude:  ptr(90.40),
	})
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, testCompanyID, checkOut)
	require.NoError(t, err)

	checkOut.Timestamp = checkOut.Timestamp.Add(time.Hour)
	_, err = svc.CheckOut(ctx, testCompanyID, checkOut)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestAttendanceService_CheckOut_OffsiteUnderRejectPolicyBecomesEmergency(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAttendanceRepo()
	resolver := scheduleservice.NewScheduleResolver(&fakeScheduleRepo{ws: ptr(dhakaSchedule())})
	geo := &fakeGeoValidator{result: geofence.Result{Inside: true}}
	svc := NewAttendanceService(repo, resolver, geo, keylock.New(), DefaultLockWait, nil)

	_, err := svc.CheckIn(ctx, testCompanyID, attendance.CheckInRequest{
		EmployeeID: "EMP-1",
		Timestamp:  time.Date(2024, 3, 11, 3, 0, 0, 0, time.UTC),
		Source:     attendance.SourceGPSPunch,
		Latitude:   ptr(23.78),
		Longitude:  ptr(90.40),
	})
	require.NoError(t, err)

	// The employee has wandered off-site by checkout time.
	geo.result = geofence.Result{Inside: false, DistanceMeters: 742, RejectOffsite: true}

	resp, err := svc.CheckOut(ctx, testCompanyID, attendance.CheckOutRequest{
		EmployeeID: "EMP-1",
		Timestamp:  time.Date(2024, 3, 11, 11, 0, 0, 0, time.UTC),
		Source:     attendance.SourceGPSPunch,
		Latitude:   ptr(23.90),
		Longitude:  ptr(90.50),
	})

	require.NoError(t, err)
	assert.True(t, resp.IsEmergencyCheckout)
	require.NotNil(t, resp.EmergencyCheckoutReason)
	assert.Equal(t, "off-site checkout 742m from office", *resp.EmergencyCheckoutReason)
}

func TestAttendanceService_CheckOut_EmergencyRequiresReason(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, dhakaSchedule(), insideGeo())

	_, err := svc.CheckOut(ctx, testCompanyID, attendance.CheckOutRequest{
		EmployeeID: "EMP-1",
		Timestamp:  time.Date(2024, 3, 11, 11, 0, 0, 0, time.UTC),
		Source:     attendance.SourceGPSPunch,
		Emergency:  true,
	})

	assert.Error(t, err)
}

func TestAttendanceService_CheckOut_AdminCheckoutOnlyCorrection(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, dhakaSchedule(), insideGeo())

	resp, err := svc.CheckOut(ctx, testCompanyID, attendance.CheckOutRequest{
		EmployeeID: "EMP-1",
		Timestamp:  time.Date(2024, 3, 11, 11, 0, 0, 0, time.UTC),
		Source:     attendance.SourceManualAdmin,
	})

	require.NoError(t, err)
	assert.Nil(t, resp.CheckInTime)
	require.NotNil(t, resp.CheckOutTime)
	assert.True(t, resp.IsCorrection)
	assert.True(t, resp.NeedsReview)
}

// ===== LATE REASON =====

func TestAttendanceService_SetLateReason_PreservesStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, dhakaSchedule(), insideGeo())

	_, err := svc.CheckIn(ctx, testCompanyID, attendance.CheckInRequest{
		EmployeeID: "EMP-1",
		Timestamp:  time.Date(2024, 3, 11, 3, 20, 0, 0, time.UTC),
		Source:     attendance.SourceGPSPunch,
		Latitude:   ptr(23.78),
		Longitude:  ptr(90.40),
	})
	require.NoError(t, err)

	resp, err := svc.SetLateReason(ctx, testCompanyID, attendance.LateReasonRequest{
		EmployeeID: "EMP-1",
		Date:       "2024-03-11",
		Reason:     "doctor appointment",
	})

	require.NoError(t, err)
	require.NotNil(t, resp.LateReason)
	assert.Equal(t, "doctor appointment", *resp.LateReason)
	assert.Equal(t, string(attendance.StatusLate), resp.Status)
	assert.Equal(t, 20, resp.LateMinutes)
}

func TestAttendanceService_SetLateReason_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, dhakaSchedule(), insideGeo())

	_, err := svc.SetLateReason(ctx, testCompanyID, attendance.LateReasonRequest{
		EmployeeID: "EMP-1",
		Date:       "2024-03-11",
		Reason:     "traffic",
	})

	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

// ===== LOCKING =====

func TestAttendanceService_CheckIn_LockTimeout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAttendanceRepo()
	resolver := scheduleservice.NewScheduleResolver(&fakeScheduleRepo{ws: ptr(dhakaSchedule())})
	locks := keylock.New()
	svc := NewAttendanceService(repo, resolver, &fakeGeoValidator{result: insideGeo()}, locks, 50*time.Millisecond, nil)

	// Hold the employee's day key so the punch cannot acquire it.
	localDate := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	release, err := locks.Acquire(ctx, attendance.DateKey("EMP-1", localDate), time.Second)
	require.NoError(t, err)
	defer release()

	_, err = svc.CheckIn(ctx, testCompanyID, attendance.CheckInRequest{
		EmployeeID: "EMP-1",
		Timestamp:  time.Date(2024, 3, 11, 3, 0, 0, 0, time.UTC),
		Source:     attendance.SourceGPSPunch,
		Latitude:   ptr(23.78),
		Longitude:  ptr(90.40),
	})

	assert.ErrorIs(t, err, keylock.ErrLockTimeout)
}

// ===== QUERIES =====

func TestAttendanceService_GetRecord_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, dhakaSchedule(), insideGeo())

	_, err := svc.GetRecord(ctx, testCompanyID, "EMP-1", "2024-03-11")
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestAttendanceService_ListRecords_InvalidRange(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, dhakaSchedule(), insideGeo())

	_, err := svc.ListRecords(ctx, testCompanyID, attendance.HistoryFilter{
		EmployeeID: "EMP-1",
		From:       "2024-03-11",
		To:         "2024-03-01",
	})
	assert.Error(t, err)
}
