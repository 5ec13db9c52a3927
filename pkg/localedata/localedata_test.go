package localedata_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/localedata"
	"github.com/dmitrymomot/intl/pkg/status"
)

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	r, err := localedata.New()
	require.NoError(t, err)

	t.Run("falls back through parents", func(t *testing.T) {
		t.Parallel()

		d, err := r.Lookup("en_US")
		require.NoError(t, err)
		assert.Equal(t, "MMM d, y", d.Date.Medium)
		assert.Equal(t, "h:mm a", d.Time.Short)
		assert.Equal(t, "January", d.Months[0])
		assert.Equal(t, 1, d.FirstDay)
		assert.Equal(t, "HH:mm", d.Skeletons["Hm"], "inherited from root")
		assert.Equal(t, "M/d/y", d.Skeletons["yMd"])
	})

	t.Run("child overrides parent fields only", func(t *testing.T) {
		t.Parallel()

		d, err := r.Lookup("en_GB")
		require.NoError(t, err)
		assert.Equal(t, "dd/MM/y", d.Date.Short)
		assert.Equal(t, "{1}, {0}", d.DateTime, "from en")
		assert.Equal(t, 2, d.FirstDay)
		assert.Equal(t, 4, d.MinDays)
	})

	t.Run("keywords and scripts are ignored", func(t *testing.T) {
		t.Parallel()

		d, err := r.Lookup("de_AT@collation=phonebook")
		require.NoError(t, err)
		assert.Equal(t, "März", d.Months[2])

		d, err = r.Lookup("zh_Hant_TW")
		require.NoError(t, err)
		assert.Equal(t, "y/M/d", d.Date.Short)
	})

	t.Run("unknown locale gets root", func(t *testing.T) {
		t.Parallel()

		d, err := r.Lookup("sw_KE")
		require.NoError(t, err)
		assert.Equal(t, "y-MM-dd", d.Date.Short)
	})

	t.Run("malformed id", func(t *testing.T) {
		t.Parallel()

		_, err := r.Lookup("!!")
		require.ErrorIs(t, err, status.InvalidParameter)
	})
}

func TestStyles_Get(t *testing.T) {
	t.Parallel()

	s := localedata.Styles{Full: "f", Long: "l", Medium: "m", Short: "s"}
	for style, want := range map[localedata.Style]string{
		localedata.Full: "f", localedata.Long: "l", localedata.Medium: "m", localedata.Short: "s", localedata.None: "",
	} {
		got, err := s.Get(style)
		require.NoError(t, err, style.String())
		assert.Equal(t, want, got)
	}
	_, err := s.Get(localedata.Style(9))
	require.ErrorIs(t, err, localedata.ErrInvalidStyle)
}

func TestData_DateTimePattern(t *testing.T) {
	t.Parallel()

	d := localedata.Data{DateTime: "{1} 'at' {0}"}
	assert.Equal(t, "MMM d 'at' HH:mm", d.DateTimePattern("MMM d", "HH:mm"))
	assert.Equal(t, "HH:mm", d.DateTimePattern("", "HH:mm"))
	assert.Equal(t, "MMM d", d.DateTimePattern("MMM d", ""))
	assert.Equal(t, "d H", localedata.Data{}.DateTimePattern("d", "H"))
}

func TestLoaders(t *testing.T) {
	t.Parallel()

	t.Run("yaml files per locale and per set", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"de_CH.yaml":    {Data: []byte("date:\n  short: \"dd.MM.yy\"\n")},
			"extra/set.yml": {Data: []byte("sw:\n  first_day: 2\n  months: [Januari]\n")},
			"README.md":     {Data: []byte("ignored")},
		}
		r, err := localedata.New(localedata.WithYAMLDir(fsys))
		require.NoError(t, err)

		d, err := r.Lookup("de_CH")
		require.NoError(t, err)
		assert.Equal(t, "dd.MM.yy", d.Date.Short)
		assert.Equal(t, "d. MMMM y", d.Date.Long, "inherited from de")

		d, err = r.Lookup("sw")
		require.NoError(t, err)
		assert.Equal(t, []string{"Januari"}, d.Months)
		assert.True(t, r.Has("sw"))
		assert.Contains(t, r.Locales(), "de_CH")
		assert.NotContains(t, r.Locales(), "root")
	})

	t.Run("json override merges", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"fr.json": {Data: []byte(`{"time":{"short":"HH 'h' mm"}}`)},
		}
		r, err := localedata.New(localedata.WithJSONDir(fsys))
		require.NoError(t, err)

		d, err := r.Lookup("fr_FR")
		require.NoError(t, err)
		assert.Equal(t, "HH 'h' mm", d.Time.Short)
		assert.Equal(t, "janvier", d.Months[0])
	})

	t.Run("invalid file", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{"bad.yaml": {Data: []byte("[: not yaml")}}
		_, err := localedata.New(localedata.WithYAMLDir(fsys))
		require.ErrorIs(t, err, localedata.ErrInvalidFile)
	})

	t.Run("with data", func(t *testing.T) {
		t.Parallel()

		r, err := localedata.New(localedata.WithData("it", localedata.Data{Months: []string{"gennaio"}}))
		require.NoError(t, err)
		d, err := r.Lookup("it_IT")
		require.NoError(t, err)
		assert.Equal(t, "gennaio", d.Months[0])
	})
}

func TestDefault(t *testing.T) {
	t.Parallel()

	r := localedata.Default()
	require.NotNil(t, r)
	assert.Same(t, r, localedata.Default())
}
