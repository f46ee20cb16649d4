package demand

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/airnet/netplan/pkg/types"
)

// DayTerminator ends each day's block in a demand matrix file.
const DayTerminator = "end"

// ReadDemandMatrix reads daily square matrices of comma-separated counts.
// Row i, column j is the demand from order[i] to order[j]; each day's rows
// are followed by a record reading "end". The diagonal is ignored.
func ReadDemandMatrix(r io.Reader, order []types.AirportCode) (types.DemandSchedule, error) {
	var (
		schedule types.DemandSchedule
		rows     [][]int
	)
	closeDay := func() error {
		m, err := toMatrix(rows, order, types.Day(len(schedule)))
		if err != nil {
			return err
		}
		schedule = append(schedule, m)
		rows = nil
		return nil
	}

	err := readRecords(r, func(record []string, line int) error {
		if len(record) == 1 && strings.TrimSpace(record[0]) == DayTerminator {
			return closeDay()
		}
		row, err := parseRow(record)
		if err != nil {
			return fmt.Errorf("demand: line %d: %w", line, err)
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		glog.Warningf("demand: last day has no %q terminator", DayTerminator)
		if err := closeDay(); err != nil {
			return nil, err
		}
	}
	return schedule, nil
}

// ReadFareMatrix reads a single square matrix of comma-separated fares.
func ReadFareMatrix(r io.Reader, order []types.AirportCode) (types.FareMatrix, error) {
	var rows [][]int
	err := readRecords(r, func(record []string, line int) error {
		row, err := parseRow(record)
		if err != nil {
			return fmt.Errorf("fares: line %d: %w", line, err)
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	m, err := toMatrix(rows, order, 0)
	if err != nil {
		return nil, err
	}
	return types.FareMatrix(m), nil
}

// readRecords hands every non-blank record of r to fn with its line number.
// Records may differ in length so that terminators and short rows reach
// the caller.
func readRecords(r io.Reader, fn func(record []string, line int) error) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		line, _ := cr.FieldPos(0)
		if err := fn(record, line); err != nil {
			return err
		}
	}
}

func parseRow(record []string) ([]int, error) {
	row := make([]int, len(record))
	for i, f := range record {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		row[i] = v
	}
	return row, nil
}

func toMatrix(rows [][]int, order []types.AirportCode, day types.Day) (map[types.Pair]int, error) {
	if len(rows) != len(order) {
		return nil, &types.DataValidationError{Day: day, Msg: fmt.Sprintf("%d rows, want %d", len(rows), len(order))}
	}
	m := make(map[types.Pair]int, len(order)*(len(order)-1))
	for i, row := range rows {
		if len(row) != len(order) {
			return nil, &types.DataValidationError{Day: day, Msg: fmt.Sprintf("row %d has %d columns, want %d", i, len(row), len(order))}
		}
		for j, v := range row {
			if i == j {
				continue
			}
			p := types.Pair{Origin: order[i], Destination: order[j]}
			if v < 0 {
				return nil, &types.DataValidationError{Day: day, Pair: p, Msg: fmt.Sprintf("negative value %d", v)}
			}
			m[p] = v
		}
	}
	return m, nil
}
