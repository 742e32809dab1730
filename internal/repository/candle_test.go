package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stocklab/types"
)

var testInterval = types.OneMinute
var startTime = time.UnixMilli(0)
var endTime = startTime.Add(time.Minute * 5)

type mockCandlesRepository struct {
	sqlError error
	empty    bool
}

func TestDatabase_GetBars(t *testing.T) {
	type args struct {
		assetId  int
		interval types.Interval
		start    time.Time
		end      time.Time
	}
	tests := []struct {
		name    string
		args    args
		want    []types.Bar
		sqlErr  error
		empty   bool
		wantErr error
	}{
		{"should throw ErrNoBars", args{999, testInterval, startTime, endTime}, nil, nil, true, ErrNoBars},
		{"should throw ErrIntervalNotSupported", args{999, types.Interval("1M"), startTime, endTime}, nil, nil, false, ErrIntervalNotSupported},
		{"should pass through query errors", args{999, testInterval, startTime, endTime}, nil, errConnReset, false, errConnReset},
		{"should return bars", args{999, testInterval, startTime, endTime}, mockBars(startTime, endTime), nil, false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &Database{
				candles: mockCandlesRepository{
					sqlError: tt.sqlErr,
					empty:    tt.empty,
				},
			}
			got, err := db.GetBars(context.Background(), tt.args.assetId, tt.args.interval, tt.args.start, tt.args.end)

			if err != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GetBars() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("GetBars() returned %d bars, want %d", len(got), len(tt.want))
			}
			for i := 0; i < len(tt.want); i++ {
				if !got[i].Timestamp.Equal(tt.want[i].Timestamp) {
					t.Errorf("GetBars() timestamp got = %v, want %v", got[i].Timestamp, tt.want[i].Timestamp)
					break
				}
				if !got[i].High.Equal(tt.want[i].High) {
					t.Errorf("GetBars() %s high got = %v, want %v", got[i].Timestamp, got[i].High, tt.want[i].High)
					break
				}
			}
		})
	}
}

func (m mockCandlesRepository) GetAggregates(_ context.Context, _ string, _ int, start, end time.Time) ([]types.Bar, error) {
	if m.sqlError != nil {
		return nil, m.sqlError
	}
	if m.empty {
		return nil, nil
	}
	return mockBars(start, end), nil
}

func mockBars(start, end time.Time) []types.Bar {
	var bars []types.Bar
	i := start
	for i.Before(end) {
		bars = append(bars, types.Bar{
			Timestamp: i,
			Open:      decimal.NewFromInt(i.UnixMilli()),
			High:      decimal.NewFromInt(i.UnixMilli()),
			Low:       decimal.NewFromInt(i.UnixMilli()),
			Close:     decimal.NewFromInt(i.UnixMilli()),
			Volume:    decimal.NewFromInt(i.UnixMilli()),
		})
		i = i.Add(types.IntervalToTime[testInterval])
	}
	return bars
}
