package convert

import (
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
	"github.com/napalu/argbind/types"
	"github.com/shopspring/decimal"
)

// DateTimeLayout is the fixed layout of the time.Time converter (yyyy-MM-dd HH:mm:ss)
const DateTimeLayout = "2006-01-02 15:04:05"

// Names of the built-in named converters
const (
	DateTimeConverter    = "datetime"
	LenientTimeConverter = "lenient-time"
	DateConverter        = "date"
	TimeOfDayConverter   = "time-of-day"
)

func registerBuiltins(r *Registry) {
	Register(r, func(raw string) (string, error) { return raw, nil })
	Register(r, parseBool)

	Register(r, func(raw string) (int, error) { return parseInt[int](raw, strconv.IntSize) })
	Register(r, func(raw string) (int8, error) { return parseInt[int8](raw, 8) })
	Register(r, func(raw string) (int16, error) { return parseInt[int16](raw, 16) })
	Register(r, func(raw string) (int32, error) { return parseInt[int32](raw, 32) })
	Register(r, func(raw string) (int64, error) { return parseInt[int64](raw, 64) })

	Register(r, func(raw string) (uint, error) { return parseUint[uint](raw, strconv.IntSize) })
	Register(r, func(raw string) (uint8, error) { return parseUint[uint8](raw, 8) })
	Register(r, func(raw string) (uint16, error) { return parseUint[uint16](raw, 16) })
	Register(r, func(raw string) (uint32, error) { return parseUint[uint32](raw, 32) })
	Register(r, func(raw string) (uint64, error) { return parseUint[uint64](raw, 64) })

	Register(r, func(raw string) (float32, error) {
		f, err := strconv.ParseFloat(raw, 32)
		return float32(f), err
	})
	Register(r, func(raw string) (float64, error) { return strconv.ParseFloat(raw, 64) })

	Register(r, decimal.NewFromString)
	Register(r, parseBigInt)
	Register(r, parseDateTime)
	Register(r, types.ParseDate)
	Register(r, types.ParseTimeOfDay)
	Register(r, time.ParseDuration)
	Register(r, uuid.Parse)

	RegisterNamed(r, DateTimeConverter, parseDateTime)
	RegisterNamed(r, LenientTimeConverter, func(raw string) (time.Time, error) { return dateparse.ParseLocal(raw) })
	RegisterNamed(r, DateConverter, types.ParseDate)
	RegisterNamed(r, TimeOfDayConverter, types.ParseTimeOfDay)
}

func parseBool(raw string) (bool, error) {
	return strconv.ParseBool(raw)
}

func parseInt[T int | int8 | int16 | int32 | int64](raw string, bits int) (T, error) {
	v, err := strconv.ParseInt(raw, 10, bits)
	if err != nil {
		return 0, err
	}

	return T(v), nil
}

func parseUint[T uint | uint8 | uint16 | uint32 | uint64](raw string, bits int) (T, error) {
	v, err := strconv.ParseUint(raw, 10, bits)
	if err != nil {
		return 0, err
	}

	return T(v), nil
}

func parseBigInt(raw string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", raw)
	}

	return v, nil
}

func parseDateTime(raw string) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, raw, time.Local)
}
