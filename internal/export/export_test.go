package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gopmm/internal/aci"
	"github.com/alexiusacademia/gopmm/internal/interaction"
	"github.com/alexiusacademia/gopmm/internal/section"
)

var props = section.Properties{Width: 300, Height: 500, Area: 150000, Ix: 3.1e9, Iy: 1.1e9, Elements: 400, MildSteelArea: 1600, RhoMild: 0.0107}

func diagrams() []*interaction.Diagram {
	return []*interaction.Diagram{
		{
			RunID: "a", Lambda: 0, Cap: 2000e3, Solved: 2,
			Points: []interaction.Point{
				{P: -1500e3, Mx: 100e6, Phi: 0.65, Family: 1, Sequence: 60, Color: "#ff0000"},
				{P: 100e3, Mx: 80e6, Phi: 0.9, Family: 3, Sequence: 200, Color: "#00ff00"},
			},
		},
		{RunID: "b", Lambda: 22.5, Cap: 2000e3},
	}
}

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, props, diagrams()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Properties", "Lambda 0", "Lambda 22.5"}, f.GetSheetList())

	v, err := f.GetCellValue("Properties", "B4")
	require.NoError(t, err)
	assert.Equal(t, "150000", v)

	rows, err := f.GetRows("Lambda 0")
	require.NoError(t, err)
	require.Len(t, rows, 9)
	assert.Equal(t, "Sequence", rows[6][0])
	assert.Equal(t, "60", rows[7][0])
	assert.Equal(t, "-1500", rows[7][3])
	assert.Equal(t, "#00ff00", rows[8][13])
}

func TestWriteReport(t *testing.T) {
	check := interaction.Check{
		Demand:  aci.Demand{Combination: aci.LoadCombinations[0], Effect: aci.Effect{P: -800, Mx: 60}},
		PhiMn:   90e6,
		Ratio:   60.0 / 90,
		OK:      true,
		InRange: true,
	}
	var buf bytes.Buffer
	err := WriteReport(&buf, Report{
		Title:      "Column C1",
		Project:    "Test",
		Properties: props,
		Diagrams:   diagrams(),
		Checks:     []interaction.Check{check},
		Date:       time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
