package benchmark

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// LogHeader is the column layout of the decompression log. Num_Processes
// names the worker-pool size; the column name is kept for compatibility
// with existing logs and the plot input format.
var LogHeader = []string{
	"Num_Images", "Num_Processes",
	"Sequential_Time_Avg", "Parallel_Time_Avg",
	"Speedup_Avg", "Efficiency_Avg",
}

// Row is one aggregate result of the decompression benchmark: the
// averages for a single (image count, worker count) configuration.
type Row struct {
	Images        int     `json:"num_images"`
	Workers       int     `json:"num_processes"`
	SequentialAvg float64 `json:"sequential_time_avg"`
	ParallelAvg   float64 `json:"parallel_time_avg"`
	SpeedupAvg    float64 `json:"speedup_avg"`
	EfficiencyAvg float64 `json:"efficiency_avg"`
}

// ResultLog appends aggregate rows to a CSV file as they are produced,
// flushing after every row so an aborted run keeps its finished rows.
type ResultLog struct {
	file   *os.File
	writer *csv.Writer
}

// CreateResultLog creates (truncating) the log file and writes the header.
func CreateResultLog(path string) (*ResultLog, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "creating result log %s", path)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(LogHeader); err != nil {
		file.Close()
		return nil, errors.Wrap(err, "writing log header")
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		return nil, errors.Wrap(err, "flushing log header")
	}

	return &ResultLog{file: file, writer: writer}, nil
}

// formatFloat round-trips through strconv, so +Inf survives a write and
// read cycle.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Append writes one row and flushes it to disk.
func (l *ResultLog) Append(row Row) error {
	record := []string{
		strconv.Itoa(row.Images),
		strconv.Itoa(row.Workers),
		formatFloat(row.SequentialAvg),
		formatFloat(row.ParallelAvg),
		formatFloat(row.SpeedupAvg),
		formatFloat(row.EfficiencyAvg),
	}
	if err := l.writer.Write(record); err != nil {
		return errors.Wrap(err, "writing result row")
	}
	l.writer.Flush()
	return errors.Wrap(l.writer.Error(), "flushing result row")
}

// Close flushes any buffered output and closes the underlying file.
func (l *ResultLog) Close() error {
	l.writer.Flush()
	if err := l.writer.Error(); err != nil {
		l.file.Close()
		return errors.Wrap(err, "flushing result log")
	}
	return l.file.Close()
}

// ReadLog parses a decompression log written by ResultLog.
func ReadLog(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening result log %s", path)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "parsing result log %s", path)
	}
	if len(records) == 0 {
		return nil, errors.Errorf("result log %s is missing its header", path)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row, err := parseRow(record)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(record []string) (Row, error) {
	if len(record) != len(LogHeader) {
		return Row{}, errors.Errorf("result row has %d fields, want %d", len(record), len(LogHeader))
	}

	var (
		row  Row
		err  error
		errs = func(e error, field string) error {
			return errors.Wrapf(e, "parsing %s", field)
		}
	)
	if row.Images, err = strconv.Atoi(record[0]); err != nil {
		return Row{}, errs(err, "Num_Images")
	}
	if row.Workers, err = strconv.Atoi(record[1]); err != nil {
		return Row{}, errs(err, "Num_Processes")
	}
	if row.SequentialAvg, err = strconv.ParseFloat(record[2], 64); err != nil {
		return Row{}, errs(err, "Sequential_Time_Avg")
	}
	if row.ParallelAvg, err = strconv.ParseFloat(record[3], 64); err != nil {
		return Row{}, errs(err, "Parallel_Time_Avg")
	}
	if row.SpeedupAvg, err = strconv.ParseFloat(record[4], 64); err != nil {
		return Row{}, errs(err, "Speedup_Avg")
	}
	if row.EfficiencyAvg, err = strconv.ParseFloat(record[5], 64); err != nil {
		return Row{}, errs(err, "Efficiency_Avg")
	}
	return row, nil
}
