package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/colonyops/tasks/internal/core/styles"
	"github.com/colonyops/tasks/pkg/kv"
)

const markdownCacheSize = 64

// markdownRenderer renders task descriptions with glamour, caching output
// per palette, width and source text.
type markdownRenderer struct {
	cache *kv.Store[string, string]
}

func newMarkdownRenderer() *markdownRenderer {
	return &markdownRenderer{cache: kv.New[string, string](markdownCacheSize)}
}

func (r *markdownRenderer) Render(st styles.Styles, md string, width int) (string, error) {
	width = max(width, 20)
	key := fmt.Sprintf("%t:%d:%s", st.Palette.Dark, width, md)

	out, err := r.cache.GetOrSet(key, func() (string, error) {
		tr, err := glamour.NewTermRenderer(
			glamour.WithStyles(st.Glamour()),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", fmt.Errorf("create markdown renderer: %w", err)
		}
		return tr.Render(md)
	})
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}
