package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"research-blog-backend/internal/domains/post"
	"research-blog-backend/internal/shared/query"
)

const (
	// MaxExportRows caps one workbook.
	MaxExportRows = 1000

	exportSheet = "Post list"
)

var exportHeaders = []string{
	"ID",
	"Unique ID",
	"Title",
	"Description",
	"Topics",
	"Owner Kind",
	"Owner",
	"Cover Image",
	"Created At",
	"Updated At",
	"Body Images",
}

// Export pages through the filtered listing and writes one row per post.
// The page in params is ignored; sort and filters apply.
func (s *postService) Export(ctx context.Context, params post.ListParams) (*excelize.File, int, error) {
	params.OwnerKind = s.kind

	var posts []post.Post
	for number := 1; len(posts) < MaxExportRows; number++ {
		params.Page = query.Page{Number: number, Limit: query.MaxLimit}

		batch, total, err := s.repo.List(ctx, params)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, batch...)

		if len(batch) < query.MaxLimit || int64(len(posts)) >= total {
			break
		}
	}
	if len(posts) > MaxExportRows {
		posts = posts[:MaxExportRows]
	}

	f, err := buildPostsExcelFile(posts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build excel file: %w", err)
	}
	return f, len(posts), nil
}

func buildPostsExcelFile(posts []post.Post) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	// Row 1: header
	for colIdx, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		_ = f.SetCellStyle(exportSheet, "A1", lastHeader, headerStyle)
	}

	// Data rows start at row 2
	for i, p := range posts {
		rowNum := i + 2

		cover := ""
		if p.CoverImage != nil {
			cover = *p.CoverImage
		}

		values := []any{
			p.ID.String(),
			p.UniqueID.String(),
			p.Title,
			p.Description,
			strings.Join(p.Topics, ", "),
			string(p.OwnerKind),
			p.OwnerID.String(),
			cover,
			p.CreatedAt.UTC().Format(time.RFC3339),
			p.UpdatedAt.UTC().Format(time.RFC3339),
			strings.Join(p.BodyImages, "\n"),
		}

		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	return f, nil
}
