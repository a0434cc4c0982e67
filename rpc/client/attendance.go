package client

import (
	"context"
	"github.com/ValentinKolb/oconn/rpc/common"
)

// AttendanceModel is the server model providing the attendance methods
const AttendanceModel = "control.horario.register"

// Methods of AttendanceModel
const (
	methodValidateRegister    = "validate_register"
	methodModuleInstalled     = "module_installed"
	methodRegisterAttendance  = "register_attendance"
	methodRegistersByDate     = "getRegistersbyDate"
	methodRangeDatesToday     = "getRangeDates_today"
	methodRangeDatesYesterday = "getRangeDates_yesterday"
	methodRangeDatesThisWeek  = "getRangeDates_this_week"
	methodRangeDatesThisMonth = "getRangeDates_this_month"
	methodLastRegisterToday   = "getLastRegisterToday"
)

// Attendance provides the time-tracking calls of AttendanceModel.
// All calls are forwarded to the server with the credentials of the session.
type Attendance struct {
	session *Session
}

// NewAttendance creates an Attendance for the session
func NewAttendance(s *Session) *Attendance {
	return &Attendance{session: s}
}

// ValidateRegister checks the data before registering a check-in or check-out.
// The result of the server is returned as string.
func (a *Attendance) ValidateRegister(ctx context.Context) (string, error) {
	result, err := a.session.execute(ctx, AttendanceModel, methodValidateRegister)
	if err != nil {
		return "", err
	}
	return common.ToString(result), nil
}

// ModuleInstalled reports whether the server module with the given name is installed
func (a *Attendance) ModuleInstalled(ctx context.Context, name string) (bool, error) {
	result, err := a.session.execute(ctx, AttendanceModel, methodModuleInstalled, name)
	if err != nil {
		return false, err
	}
	return common.ToBool(common.ToString(result)), nil
}

// RegisterAttendance registers a check-in or check-out of the employee
func (a *Attendance) RegisterAttendance(ctx context.Context, employeeID int64) (bool, error) {
	result, err := a.session.execute(ctx, AttendanceModel, methodRegisterAttendance, employeeID)
	if err != nil {
		return false, err
	}
	return common.ToBool(common.ToString(result)), nil
}

// RegistersByDate returns the registers of the employee between from and to
// (dates formatted as expected by the server, e.g. 2024-01-31 00:00:00)
func (a *Attendance) RegistersByDate(ctx context.Context, from, to string, employeeID int64) (common.Record, error) {
	return a.record(ctx, methodRegistersByDate, false, from, to, employeeID)
}

// RangeDatesToday returns the date range of today
func (a *Attendance) RangeDatesToday(ctx context.Context) (common.Record, error) {
	return a.record(ctx, methodRangeDatesToday, true)
}

// RangeDatesYesterday returns the date range of yesterday
func (a *Attendance) RangeDatesYesterday(ctx context.Context) (common.Record, error) {
	return a.record(ctx, methodRangeDatesYesterday, true)
}

// RangeDatesThisWeek returns the date range of the current week
func (a *Attendance) RangeDatesThisWeek(ctx context.Context) (common.Record, error) {
	return a.record(ctx, methodRangeDatesThisWeek, true)
}

// RangeDatesThisMonth returns the date range of the current month
func (a *Attendance) RangeDatesThisMonth(ctx context.Context) (common.Record, error) {
	return a.record(ctx, methodRangeDatesThisMonth, true)
}

// LastRegisterToday returns the last register of the employee today
func (a *Attendance) LastRegisterToday(ctx context.Context, employeeID int64) (common.Record, error) {
	return a.record(ctx, methodLastRegisterToday, false, employeeID)
}

// record calls a method returning a struct. If datesToStrings is set, every
// date value of the result is converted to the server datetime string.
func (a *Attendance) record(ctx context.Context, method string, datesToStrings bool, params ...interface{}) (common.Record, error) {
	result, err := a.session.execute(ctx, AttendanceModel, method, params...)
	if err != nil {
		return nil, err
	}

	record, err := common.ToRecord(result)
	if err != nil {
		return nil, unexpected(AttendanceModel, method, err)
	}
	if datesToStrings {
		common.DatesToStrings(record)
	}
	return record, nil
}
