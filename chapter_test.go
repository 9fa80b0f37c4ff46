package bookshelf_test

import (
	"testing"

	"github.com/fwojciec/bookshelf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChapterOrdinal(t *testing.T) {
	t.Parallel()

	t.Run("returns segment before trailing slash", func(t *testing.T) {
		t.Parallel()

		n, err := bookshelf.ParseChapterOrdinal("http://example.com/library/Jane_Austen/Emma/12/")

		require.NoError(t, err)
		assert.Equal(t, 12, n)
	})

	t.Run("accepts zero", func(t *testing.T) {
		t.Parallel()

		n, err := bookshelf.ParseChapterOrdinal("http://example.com/library/A/B/0/")

		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("ignores query string", func(t *testing.T) {
		t.Parallel()

		n, err := bookshelf.ParseChapterOrdinal("http://example.com/library/A/B/7/?print=1")

		require.NoError(t, err)
		assert.Equal(t, 7, n)
	})

	t.Run("rejects non-numeric segment", func(t *testing.T) {
		t.Parallel()

		_, err := bookshelf.ParseChapterOrdinal("http://example.com/library/A/B/preface/")

		require.Error(t, err)
		assert.Equal(t, bookshelf.EINVALID, bookshelf.ErrorCode(err))
	})

	t.Run("rejects encoded slash inside the segment", func(t *testing.T) {
		t.Parallel()

		_, err := bookshelf.ParseChapterOrdinal("http://example.com/library/A/B/1%2F2/")

		require.Error(t, err)
		assert.Equal(t, bookshelf.EINVALID, bookshelf.ErrorCode(err))
	})

	t.Run("decodes escaped digits", func(t *testing.T) {
		t.Parallel()

		n, err := bookshelf.ParseChapterOrdinal("http://example.com/library/A/B/%31%32/")

		require.NoError(t, err)
		assert.Equal(t, 12, n)
	})

	t.Run("rejects URL without trailing slash", func(t *testing.T) {
		t.Parallel()

		_, err := bookshelf.ParseChapterOrdinal("http://example.com/library/A/B/3")

		require.Error(t, err)
		assert.Equal(t, bookshelf.EINVALID, bookshelf.ErrorCode(err))
	})

	t.Run("rejects negative number", func(t *testing.T) {
		t.Parallel()

		_, err := bookshelf.ParseChapterOrdinal("http://example.com/library/A/B/-1/")

		require.Error(t, err)
		assert.Equal(t, bookshelf.EINVALID, bookshelf.ErrorCode(err))
	})

	t.Run("rejects empty path", func(t *testing.T) {
		t.Parallel()

		_, err := bookshelf.ParseChapterOrdinal("http://example.com")

		require.Error(t, err)
		assert.Equal(t, bookshelf.EINVALID, bookshelf.ErrorCode(err))
	})
}

func TestChapter_Text(t *testing.T) {
	t.Parallel()

	ch := bookshelf.Chapter{Ordinal: 1, Body: []string{"It was ", "a dark ", "night."}}

	assert.Equal(t, "It was a dark night.", ch.Text())
}

func TestJoinChapters(t *testing.T) {
	t.Parallel()

	t.Run("concatenates in slice order without separators", func(t *testing.T) {
		t.Parallel()

		chapters := []bookshelf.Chapter{
			{Ordinal: 1, Body: []string{"a", "b"}},
			{Ordinal: 2, Body: []string{"c"}},
			{Ordinal: 3, Body: nil},
			{Ordinal: 4, Body: []string{"d", "e"}},
		}

		assert.Equal(t, "abcde", bookshelf.JoinChapters(chapters))
	})

	t.Run("returns empty string for no chapters", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, bookshelf.JoinChapters(nil))
	})
}
