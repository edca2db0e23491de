package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auto_wp_article_publisher/article"
	"auto_wp_article_publisher/blocks"
	"auto_wp_article_publisher/config"
	"auto_wp_article_publisher/loader"
	"auto_wp_article_publisher/publisher"
	"auto_wp_article_publisher/validator"
)

type fakeStructurer struct {
	doc *article.Document
	err error
}

func (f *fakeStructurer) Structure(ctx context.Context, content, title string) (*article.Document, error) {
	return f.doc, f.err
}

type fakePublisher struct {
	slugHits map[string]int

	created    []publisher.PostParams
	updated    []int
	createErr  error
	updateErr  error
	categories map[string]int
	tags       map[string]int
}

func (f *fakePublisher) FindPostBySlug(ctx context.Context, slug string) (int, bool) {
	id, ok := f.slugHits[slug]
	return id, ok
}

func (f *fakePublisher) CreatePost(ctx context.Context, params publisher.PostParams) (*publisher.PostResult, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, params)
	return &publisher.PostResult{PostID: 100, Status: params.Status, Action: "created"}, nil
}

func (f *fakePublisher) UpdatePost(ctx context.Context, postID int, params publisher.UpdateParams) (*publisher.PostResult, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updated = append(f.updated, postID)
	return &publisher.PostResult{PostID: postID, Status: params.Status, Action: "updated"}, nil
}

func (f *fakePublisher) GetCategoryID(ctx context.Context, name string) (int, bool) {
	id, ok := f.categories[name]
	return id, ok
}

func (f *fakePublisher) GetTagIDs(ctx context.Context, names []string) []int {
	var ids []int
	for _, n := range names {
		if id, ok := f.tags[n]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

type fakeHistory struct {
	known   map[string]int
	created []string
	updated []string
}

func (f *fakeHistory) FindBySlug(slug string) (int, bool) {
	id, ok := f.known[slug]
	return id, ok
}

func (f *fakeHistory) SaveCreated(slug string, postID int, title, sourceFile string) {
	f.created = append(f.created, slug)
}

func (f *fakeHistory) SaveUpdated(slug, title string) {
	f.updated = append(f.updated, slug)
}

func validDocument() *article.Document {
	return &article.Document{
		Lead:    "導入文",
		Points:  &article.Callout{Items: []string{"一", "二", "三"}},
		Summary: &article.Callout{Items: []string{"一", "二", "三", "四"}},
		Sections: []article.Section{
			article.Heading{Level: 2, Text: "一"},
			article.Heading{Level: 2, Text: "二"},
			article.Heading{Level: 2, Text: "三"},
			article.Table{Headers: []string{"h"}, Rows: [][]string{{"v"}}},
			article.FAQ{Items: []article.QA{{Question: "q1", Answer: "a1"}, {Question: "q2", Answer: "a2"}}},
		},
		Raw: map[string]any{"lead": "導入文"},
	}
}

func writeManuscript(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "draft.md")
	content := "---\ntitle: 記事\nslug: kiji\ndescription: 説明\ncategory: コラム\ntags: [wordpress]\n---\n本文\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

type fixture struct {
	runner  *Runner
	pub     *fakePublisher
	hist    *fakeHistory
	outDir  string
	path    string
	confirm func(string) bool
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		pub:    &fakePublisher{categories: map[string]int{"コラム": 2}, tags: map[string]int{"wordpress": 11}},
		hist:   &fakeHistory{known: map[string]int{}},
		outDir: dir,
		path:   writeManuscript(t, dir),
	}
	f.runner = NewRunner(Params{
		Loader:     loader.New(),
		Structurer: &fakeStructurer{doc: validDocument()},
		Validator:  validator.New(),
		Generator:  blocks.New(""),
		Publisher:  f.pub,
		History:    f.hist,
		Output: config.OutputConfig{
			SaveJSON: true,
			SaveHTML: true,
			JSONDir:  filepath.Join(dir, "json"),
			HTMLDir:  filepath.Join(dir, "html"),
		},
		DefaultCategory: "コラム",
		DefaultStatus:   "draft",
		CTAEnabled:      false,
		Confirm:         func(prompt string) bool { return f.confirm != nil && f.confirm(prompt) },
		Log:             zerolog.Nop(),
	})
	return f
}

func TestProcessFile(t *testing.T) {
	t.Run("creates a new post and records it", func(t *testing.T) {
		f := newFixture(t)
		err := f.runner.ProcessFile(context.Background(), f.path, Options{})
		require.NoError(t, err)

		require.Len(t, f.pub.created, 1)
		params := f.pub.created[0]
		assert.Equal(t, "記事", params.Title)
		assert.Equal(t, "kiji", params.Slug)
		assert.Equal(t, "draft", params.Status)
		assert.Equal(t, 2, params.CategoryID)
		assert.Equal(t, []int{11}, params.TagIDs)
		assert.Equal(t, "説明", params.MetaDescription)
		assert.Contains(t, params.Content, "<!-- wp:heading")

		assert.Equal(t, []string{"kiji"}, f.hist.created)
		assert.Empty(t, f.hist.updated)
	})

	t.Run("writes artifacts", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.runner.ProcessFile(context.Background(), f.path, Options{DryRun: true}))

		jsonData, err := os.ReadFile(filepath.Join(f.outDir, "json", "kiji.json"))
		require.NoError(t, err)
		assert.Contains(t, string(jsonData), "導入文")

		htmlData, err := os.ReadFile(filepath.Join(f.outDir, "html", "kiji.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(htmlData), "<!-- wp:paragraph")
	})

	t.Run("dry run stops before any publish call", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.runner.ProcessFile(context.Background(), f.path, Options{DryRun: true}))
		assert.Empty(t, f.pub.created)
		assert.Empty(t, f.pub.updated)
		assert.Empty(t, f.hist.created)
	})

	t.Run("validation errors block publication", func(t *testing.T) {
		f := newFixture(t)
		f.runner.p.Structurer = &fakeStructurer{doc: &article.Document{Raw: map[string]any{}}}

		err := f.runner.ProcessFile(context.Background(), f.path, Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
		assert.Empty(t, f.pub.created)
	})

	t.Run("skip validation lets an invalid document through", func(t *testing.T) {
		f := newFixture(t)
		f.runner.p.Structurer = &fakeStructurer{doc: &article.Document{Lead: "x", Raw: map[string]any{}}}

		err := f.runner.ProcessFile(context.Background(), f.path, Options{SkipValidation: true})
		require.NoError(t, err)
		assert.Len(t, f.pub.created, 1)
	})

	t.Run("structuring failure aborts the document", func(t *testing.T) {
		f := newFixture(t)
		f.runner.p.Structurer = &fakeStructurer{err: errors.New("backend down")}

		err := f.runner.ProcessFile(context.Background(), f.path, Options{})
		require.Error(t, err)
		assert.Empty(t, f.pub.created)
	})

	t.Run("confirm gate declines", func(t *testing.T) {
		f := newFixture(t)
		err := f.runner.ProcessFile(context.Background(), f.path, Options{Confirm: true})
		assert.ErrorIs(t, err, ErrAborted)
		assert.Empty(t, f.pub.created)
	})

	t.Run("confirm gate accepts", func(t *testing.T) {
		f := newFixture(t)
		f.confirm = func(string) bool { return true }
		err := f.runner.ProcessFile(context.Background(), f.path, Options{Confirm: true})
		require.NoError(t, err)
		assert.Len(t, f.pub.created, 1)
	})
}

func TestPublishRouting(t *testing.T) {
	t.Run("history hit with force-update updates in place", func(t *testing.T) {
		f := newFixture(t)
		f.hist.known["kiji"] = 42

		err := f.runner.ProcessFile(context.Background(), f.path, Options{ForceUpdate: true})
		require.NoError(t, err)
		assert.Equal(t, []int{42}, f.pub.updated)
		assert.Empty(t, f.pub.created)
		assert.Equal(t, []string{"kiji"}, f.hist.updated)
	})

	t.Run("remote slug search backstops the history store", func(t *testing.T) {
		f := newFixture(t)
		f.pub.slugHits = map[string]int{"kiji": 77}

		err := f.runner.ProcessFile(context.Background(), f.path, Options{ForceUpdate: true})
		require.NoError(t, err)
		assert.Equal(t, []int{77}, f.pub.updated)
	})

	t.Run("existing post without force-update asks the operator", func(t *testing.T) {
		f := newFixture(t)
		f.hist.known["kiji"] = 42
		var prompt string
		f.confirm = func(p string) bool { prompt = p; return false }

		err := f.runner.ProcessFile(context.Background(), f.path, Options{})
		assert.ErrorIs(t, err, ErrAborted)
		assert.Contains(t, prompt, "ID: 42")
		assert.Empty(t, f.pub.updated)
	})

	t.Run("force-new ignores existing posts", func(t *testing.T) {
		f := newFixture(t)
		f.hist.known["kiji"] = 42
		f.pub.slugHits = map[string]int{"kiji": 42}

		err := f.runner.ProcessFile(context.Background(), f.path, Options{ForceNew: true})
		require.NoError(t, err)
		assert.Len(t, f.pub.created, 1)
		assert.Empty(t, f.pub.updated)
	})

	t.Run("publish switch overrides status", func(t *testing.T) {
		f := newFixture(t)
		err := f.runner.ProcessFile(context.Background(), f.path, Options{Publish: true})
		require.NoError(t, err)
		assert.Equal(t, "publish", f.pub.created[0].Status)
	})

	t.Run("create failure surfaces and skips the history write", func(t *testing.T) {
		f := newFixture(t)
		f.pub.createErr = errors.New("HTTP 500")

		err := f.runner.ProcessFile(context.Background(), f.path, Options{})
		require.Error(t, err)
		assert.Empty(t, f.hist.created)
	})
}

func TestResolveStatus(t *testing.T) {
	r := NewRunner(Params{DefaultStatus: "pending"})

	assert.Equal(t, "publish", r.resolveStatus(&loader.Draft{Status: "draft"}, Options{Publish: true}))
	assert.Equal(t, "future", r.resolveStatus(&loader.Draft{Status: "future"}, Options{}))
	assert.Equal(t, "pending", r.resolveStatus(&loader.Draft{}, Options{}))

	bare := NewRunner(Params{})
	assert.Equal(t, "draft", bare.resolveStatus(&loader.Draft{}, Options{}))
}

func TestRun(t *testing.T) {
	t.Run("a failing document does not abort its siblings", func(t *testing.T) {
		f := newFixture(t)
		missing := filepath.Join(f.outDir, "missing.md")

		succeeded, failed := f.runner.Run(context.Background(), []string{missing, f.path}, Options{})
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 1, failed)
		assert.Len(t, f.pub.created, 1)
	})
}
