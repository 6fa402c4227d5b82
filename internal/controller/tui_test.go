package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "distill.dev/pkg/distill/internal/model"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(pm planModel, keys ...string) planModel {
	for _, k := range keys {
		next, _ := pm.Update(keyMsg(k))
		pm = next.(planModel)
	}

	return pm
}

func TestTUI_ViewPlanSmallPlanPrintsTables(t *testing.T) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	require.NoError(t, NewTUI(cmd).ViewPlan(context.Background(), testPlan(2)))
	assert.Contains(t, buf.String(), "legacy (2)")
}

func TestPlanModel_Pagination(t *testing.T) {
	pm := newPlanModel(testPlan(40))
	next, _ := pm.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	pm = next.(planModel)

	require.True(t, pm.needsPagination())
	assert.Equal(t, 11, pm.itemsPerPage())

	pm = press(pm, "tab", "tab")
	assert.Equal(t, m.CategoryLegacy, pm.category())
	assert.Equal(t, 29, pm.maxOffset())

	pm = press(pm, "j", "j", "j")
	assert.Equal(t, 3, pm.offset)

	pm = press(pm, "k")
	assert.Equal(t, 2, pm.offset)

	pm = press(pm, "d")
	assert.Equal(t, 13, pm.offset)

	pm = press(pm, "G")
	assert.Equal(t, 29, pm.offset)

	pm = press(pm, "j")
	assert.Equal(t, 29, pm.offset, "offset is clamped at the bottom")

	pm = press(pm, "u", "g")
	assert.Equal(t, 0, pm.offset)

	pm = press(pm, "k")
	assert.Equal(t, 0, pm.offset, "offset is clamped at the top")

	view := pm.View()
	assert.Contains(t, view, "entries 1-11 of 40")
	assert.Contains(t, view, "keep tier is empty")
	assert.Contains(t, view, "quit")
}

func TestPlanModel_TabsWrapAndResetOffset(t *testing.T) {
	pm := newPlanModel(testPlan(40))
	pm.height = 20

	pm = press(pm, "shift+tab")
	assert.Equal(t, m.CategoryExternal, pm.category())
	assert.Contains(t, pm.View(), "no files in this category")

	pm = press(pm, "tab", "tab", "tab", "j", "tab")
	assert.Equal(t, m.CategoryExternal, pm.category())
	assert.Equal(t, 0, pm.offset)
}

func TestPlanModel_Quit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		pm := newPlanModel(testPlan(1))

		next, cmd := pm.Update(keyMsg(k))
		require.NotNil(t, cmd)
		assert.True(t, next.(planModel).quitting)
		assert.Empty(t, next.(planModel).View())
	}
}

func TestPlanModel_NoPaginationWithoutHeight(t *testing.T) {
	pm := newPlanModel(testPlan(100))

	assert.False(t, pm.needsPagination())
	assert.Equal(t, 10, pm.itemsPerPage())

	pm = press(pm, "tab", "tab")
	view := pm.View()
	assert.Equal(t, 100, strings.Count(view, ".py"))
}
