package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hejazi/internal/domain"
	"hejazi/internal/service"
	"hejazi/mocks"
)

var header = []string{"Service", "AR", "EN", "Sub", "AR", "EN", "Leaf", "AR", "EN"}

func TestParseRows_CarriesParentsDown(t *testing.T) {
	rows := [][]string{
		header,
		{"SEC", "الأمن", "Security", "SEC.EVAL", "التقييم", "Evaluation", "SEC.EVAL.APPROVE", "اعتماد", "Approve"},
		{"", "", "", "", "", "", "SEC.EVAL.EXPORT", "تصدير", "Export"},
		{"", "", "", "SEC.VIOL", "المخالفات", "Violations"},
		{},
		{"SAFE", "السلامة", "Safety"},
	}

	nodes, err := parseRows(rows)
	require.NoError(t, err)
	require.Len(t, nodes, 6)

	assert.Equal(t, domain.LevelService, nodes[0].Level)
	assert.Equal(t, "", nodes[0].ParentCode)
	assert.Equal(t, "SEC.EVAL", nodes[2].ParentCode)
	assert.Equal(t, "SEC.EVAL", nodes[3].ParentCode)
	assert.Equal(t, 2, nodes[3].SortOrder)
	assert.Equal(t, "SEC", nodes[4].ParentCode)
	assert.Equal(t, 2, nodes[4].SortOrder)
	assert.Equal(t, "SAFE", nodes[5].Code)
	assert.Equal(t, 6, nodes[5].Row)
}

func TestParseRows_RepeatedCodeKeptOnce(t *testing.T) {
	rows := [][]string{
		header,
		{"SEC", "الأمن", "", "SEC.EVAL", "التقييم"},
		{"sec", "الأمن", "", "SEC.VIOL", "المخالفات"},
	}

	nodes, err := parseRows(rows)
	require.NoError(t, err)
	assert.Len(t, nodes, 3)
}

func TestParseRows_Errors(t *testing.T) {
	cases := map[string][][]string{
		"sub without service": {header, {"", "", "", "SEC.EVAL", "التقييم"}},
		"leaf without sub":    {header, {"SEC", "الأمن", "", "", "", "", "SEC.X", "س"}},
		"missing arabic name": {header, {"SEC", ""}},
		"code at two levels":  {header, {"SEC", "الأمن", "", "SEC", "الأمن"}},
	}
	for name, rows := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseRows(rows)
			assert.Error(t, err)
		})
	}
}

func TestReadSheet(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]string{"OPS", "العمليات", "Operations"}))
	path := filepath.Join(t.TempDir(), "taxonomy.xlsx")
	require.NoError(t, f.SaveAs(path))

	nodes, err := readSheet(path, "")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "Operations", nodes[0].NameEN)

	_, err = readSheet(filepath.Join(t.TempDir(), "missing.xlsx"), "")
	assert.Error(t, err)
}

func TestImportNodes_SkipsExistingAndLinksParents(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	secID, evalID := uuid.New(), uuid.New()
	tax := new(mocks.MockTaxonomyService)

	tax.On("Tree", ctx, tenantID).Return([]service.TreeNode{
		{TaxonomyNode: domain.TaxonomyNode{ID: secID, Code: "SEC"}},
	}, nil)
	tax.On("Create", ctx, tenantID, mock.MatchedBy(func(in service.CreateNodeInput) bool {
		return in.Code == "SEC.EVAL" && in.ParentID != nil && *in.ParentID == secID
	})).Return(&domain.TaxonomyNode{ID: evalID, Code: "SEC.EVAL"}, nil)
	tax.On("Create", ctx, tenantID, mock.MatchedBy(func(in service.CreateNodeInput) bool {
		return in.Code == "SEC.EVAL.APPROVE" && in.ParentID != nil && *in.ParentID == evalID
	})).Return(&domain.TaxonomyNode{ID: uuid.New()}, nil)

	nodes := []seedNode{
		{Level: domain.LevelService, Code: "sec", NameAR: "الأمن"},
		{Level: domain.LevelSubService, Code: "SEC.EVAL", ParentCode: "sec", NameAR: "التقييم"},
		{Level: domain.LevelSubSubService, Code: "SEC.EVAL.APPROVE", ParentCode: "SEC.EVAL", NameAR: "اعتماد"},
	}

	res, err := importNodes(ctx, tax, tenantID, nodes, false)
	require.NoError(t, err)
	assert.Equal(t, importResult{Created: 2, Skipped: 1}, res)
	tax.AssertExpectations(t)
}

func TestImportNodes_DryRunWritesNothing(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	tax := new(mocks.MockTaxonomyService)
	tax.On("Tree", ctx, tenantID).Return([]service.TreeNode{}, nil)

	nodes := []seedNode{
		{Level: domain.LevelService, Code: "SEC", NameAR: "الأمن"},
		{Level: domain.LevelSubService, Code: "SEC.EVAL", ParentCode: "SEC", NameAR: "التقييم"},
	}

	res, err := importNodes(ctx, tax, tenantID, nodes, true)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	tax.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestImportNodes_DuplicateAtOtherLevel(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	tax := new(mocks.MockTaxonomyService)
	tax.On("Tree", ctx, tenantID).Return([]service.TreeNode{}, nil)
	tax.On("Create", ctx, tenantID, mock.Anything).Return(nil, domain.ErrDuplicateCode)

	_, err := importNodes(ctx, tax, tenantID, []seedNode{{Level: domain.LevelService, Code: "SEC", NameAR: "الأمن", Row: 2}}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}
