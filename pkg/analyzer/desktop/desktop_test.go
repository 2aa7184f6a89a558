package desktop

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaffgen/core/pkg/analyzer"
	"github.com/scaffgen/core/pkg/domain"
	"github.com/scaffgen/core/pkg/parser"
)

const mainFormSource = `
using System;
using System.Windows.Forms;

namespace Shop.Desktop
{
    public partial class MainForm : Form
    {
        private readonly IDataService _dataService;
        private Button _saveButton;

        public MainForm(IDataService dataService, IReportPrinter printer)
        {
            _dataService = dataService;
        }

        private void btnSave_Click(object sender, EventArgs e)
        {
        }

        private void grid_SelectionChanged(object sender, DataGridViewCellEventArgs e)
        {
        }

        public void RefreshData()
        {
        }
    }
}
`

func TestAnalyzer_Category(t *testing.T) {
	assert.Equal(t, domain.CategoryDesktop, New().Category())
}

func TestCanAnalyze(t *testing.T) {
	a := New()

	assert.True(t, a.CanAnalyze("MainForm.cs"))
	assert.True(t, a.CanAnalyze("src/Views/MainWindow.xaml.cs"))
	assert.False(t, a.CanAnalyze("MainWindow.xaml"))
	assert.False(t, a.CanAnalyze("readme.md"))
}

func TestAnalyzeContent(t *testing.T) {
	methods, err := New().AnalyzeContent(context.Background(), []byte(mainFormSource), "MainForm.cs")
	require.NoError(t, err)

	// Every declared method, private event handlers included.
	require.Len(t, methods, 3)

	byName := make(map[string]domain.MethodMetadata)
	for _, m := range methods {
		byName[m.Name] = m
	}

	save := byName["btnSave_Click"]
	assert.True(t, strings.Contains(save.Documentation, "[EventHandler]"))
	assert.True(t, strings.Contains(save.Documentation, "[Form]"))

	grid := byName["grid_SelectionChanged"]
	assert.True(t, strings.Contains(grid.Documentation, "[EventHandler]"))

	refresh := byName["RefreshData"]
	assert.False(t, strings.Contains(refresh.Documentation, "[EventHandler]"))
	assert.True(t, strings.Contains(refresh.Documentation, "[Form]"))

	// Constructor parameters plus fields, UI controls excluded.
	deps := save.Dependencies
	require.Len(t, deps, 2)
	assert.Equal(t, "IDataService", deps[0].Type)
	assert.Equal(t, domain.DependencyKindConstructor, deps[0].Kind)
	assert.Equal(t, "IReportPrinter", deps[1].Type)

	for _, dep := range deps {
		assert.Equal(t, dep.IsInterface, dep.CanBeMocked)
	}
}

func TestAnalyzeContent_WpfWindow(t *testing.T) {
	source := `
public partial class SettingsWindow : Window
{
    public SettingsWindow() { InitializeComponent(); }

    private void OnClosing(object sender, CancelEventArgs e) { }
}
`
	methods, err := New().AnalyzeContent(context.Background(), []byte(source), "SettingsWindow.xaml.cs")
	require.NoError(t, err)

	require.Len(t, methods, 1)
	assert.True(t, strings.Contains(methods[0].Documentation, "[Window]"))
	assert.True(t, strings.Contains(methods[0].Documentation, "[EventHandler]"))
}

func TestAnalyzeContent_PlainClass(t *testing.T) {
	source := `
public class OrderService
{
    public void Save() { }
}
`
	methods, err := New().AnalyzeContent(context.Background(), []byte(source), "OrderService.cs")
	require.NoError(t, err)

	require.Len(t, methods, 1)
	assert.Empty(t, methods[0].Documentation)
}

func TestClassifyClass_Precedence(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected UIKind
	}{
		{"form", `class A : Form { }`, UIKindForm},
		{"window", `class A : Window { }`, UIKindWindow},
		{"user control wins over control substring", `class A : UserControl { }`, UIKindUserControl},
		{"wpf page", `class A : Page { }`, UIKindPage},
		{"no base", `class A { }`, UIKindNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyFirstClass(t, tt.source))
		})
	}
}

func classifyFirstClass(t *testing.T, source string) UIKind {
	t.Helper()
	src := []byte(source)
	tree, err := parser.Parse(context.Background(), src)
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	classes := analyzer.CollectClasses(tree.RootNode())
	require.NotEmpty(t, classes, "class declaration not found")
	return ClassifyClass(classes[0], src)
}

func TestIsEventHandler(t *testing.T) {
	tests := []struct {
		name     string
		params   []domain.ParameterInfo
		expected bool
	}{
		{
			"classic signature",
			[]domain.ParameterInfo{{Name: "sender", Type: "object"}, {Name: "e", Type: "EventArgs"}},
			true,
		},
		{
			"derived event args",
			[]domain.ParameterInfo{{Name: "sender", Type: "object"}, {Name: "e", Type: "MouseEventArgs"}},
			true,
		},
		{
			"qualified object",
			[]domain.ParameterInfo{{Name: "sender", Type: "System.Object"}, {Name: "e", Type: "EventArgs"}},
			true,
		},
		{
			"wrong first parameter",
			[]domain.ParameterInfo{{Name: "sender", Type: "string"}, {Name: "e", Type: "EventArgs"}},
			false,
		},
		{
			"one parameter",
			[]domain.ParameterInfo{{Name: "e", Type: "EventArgs"}},
			false,
		},
		{
			"no parameters",
			nil,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isEventHandler(tt.params))
		})
	}
}
