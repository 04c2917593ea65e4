package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

var pipelineColumns = []string{
	"RANK", "APPLICATION ID", "CANDIDATE", "STATUS", "MATCH SCORE", "PROFILE COMPLETENESS", "SUBMITTED AT",
}

func pipelineRow(rank int, r domain.RankedApplicant) []any {
	return []any{
		rank,
		r.Application.ID,
		r.CandidateName,
		string(r.Application.Status),
		r.MatchScore,
		r.Completeness,
		r.Application.SubmittedAt.Format(time.RFC3339),
	}
}

// ExportPipeline renders the ranked applicants of a job as xlsx or csv and
// returns the file together with its name
func (uc *applicationUsecase) ExportPipeline(ctx context.Context, principal domain.Principal, jobID int64, format string) ([]byte, string, error) {
	if format != "" && format != "xlsx" && format != "csv" {
		return nil, "", apperror.Validation(fmt.Sprintf("Unsupported export format: %s", format))
	}

	ranked, err := uc.RankApplicants(ctx, principal, jobID)
	if err != nil {
		return nil, "", err
	}

	stamp := uc.opts.now().Format("20060102_150405")
	if format == "csv" {
		data, err := exportPipelineCSV(ranked)
		if err != nil {
			return nil, "", apperror.Internal(err)
		}
		return data, fmt.Sprintf("job_%d_pipeline_%s.csv", jobID, stamp), nil
	}

	data, err := exportPipelineExcel(ranked)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return data, fmt.Sprintf("job_%d_pipeline_%s.xlsx", jobID, stamp), nil
}

func exportPipelineExcel(ranked []domain.RankedApplicant) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheetName := "Pipeline"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, header := range pipelineColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(pipelineColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, r := range ranked {
		for colIdx, value := range pipelineRow(rowIdx+1, r) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range pipelineColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func exportPipelineCSV(ranked []domain.RankedApplicant) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(pipelineColumns); err != nil {
		return nil, err
	}
	for i, r := range ranked {
		values := pipelineRow(i+1, r)
		record := make([]string, len(values))
		for j, v := range values {
			switch v := v.(type) {
			case string:
				record[j] = v
			case int:
				record[j] = strconv.Itoa(v)
			case int64:
				record[j] = strconv.FormatInt(v, 10)
			default:
				record[j] = fmt.Sprint(v)
			}
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
