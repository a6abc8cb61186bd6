package keyopts

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldIgnoreMinusTag(t *testing.T) {
	cfg := struct {
		Hidden string `opts:"-"`
	}{}
	fields, err := getFieldsFromConfig(&cfg)
	require.Nil(t, err)
	assert.Len(t, fields, 0)
}

func TestFieldIgnoreUnexported(t *testing.T) {
	cfg := struct {
		hidden string
		Shown  string
	}{}
	fields, err := getFieldsFromConfig(&cfg)
	require.Nil(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "Shown", fields[0].key)
}

func TestFieldsRequireStructPointer(t *testing.T) {
	cases := []interface{}{
		nil,
		struct{}{},
		new(int),
	}
	for _, c := range cases {
		_, err := StructDefinitions(c)
		assert.Error(t, err, "%T", c)
	}
}

func TestStructDefinitions(t *testing.T) {
	cfg := struct {
		Verbose   bool     `opts:"short=v,help=print more"`
		Output    string   `opts:"short=o"`
		Jobs      int      `opts:"name=parallel"`
		Includes  []string `opts:"short=I"`
		Pair      []string `opts:"min=2,max=2"`
		Level     string   `opts:"default=info"`
		Timeout   time.Duration
		Addresses []string `opts:"default='a b \"c d\"'"`
		Rest      []string `opts:"args"`
	}{
		Timeout: 5 * time.Second,
	}

	defs, err := StructDefinitions(&cfg)
	require.NoError(t, err)

	assert.Equal(t, []KeyedDefinition[string]{
		Define("Verbose", 'v', "verbose", 0, 0, "print more"),
		Define("Output", 'o', "output", 1, 1, ""),
		Define("Jobs", 0, "parallel", 1, 1, ""),
		Define("Includes", 'I', "includes", 1, Unbounded, ""),
		Define("Pair", 0, "pair", 2, 2, ""),
		Define("Level", 0, "level", 1, 1, "", "info"),
		Define("Timeout", 0, "timeout", 1, 1, "", "5s"),
		Define("Addresses", 0, "addresses", 1, Unbounded, "", "a", "b", "c d"),
	}, defs)
}

func TestStructDefinitionsEmbedded(t *testing.T) {
	type Common struct {
		Debug bool `opts:"short=d"`
	}
	cfg := struct {
		Common
		Name string
	}{}

	defs, err := StructDefinitions(&cfg)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "Debug", defs[0].Key)
	assert.Equal(t, 'd', defs[0].Short)
	assert.Equal(t, "Name", defs[1].Key)
}

func TestStructDefinitionsBadTags(t *testing.T) {
	cases := []struct {
		name string
		cfg  interface{}
	}{
		{
			"long short",
			&struct {
				A string `opts:"short=ab"`
			}{},
		},
		{
			"bad min",
			&struct {
				A string `opts:"min=x"`
			}{},
		},
		{
			"unknown tag",
			&struct {
				A string `opts:"bogus"`
			}{},
		},
		{
			"args not strings",
			&struct {
				A []int `opts:"args"`
			}{},
		},
		{
			"unsupported type",
			&struct {
				A map[string]string
			}{},
		},
	}
	for _, c := range cases {
		_, err := StructDefinitions(c.cfg)
		assert.Error(t, err, c.name)
	}
}

func TestBuildFromStructValidates(t *testing.T) {
	cfg := struct {
		A string `opts:"short=x"`
		B string `opts:"short=x"`
	}{}
	_, err := BuildFromStruct(&cfg)
	assert.ErrorIs(t, err, ErrDuplicateShortFlag)
}

func TestDecode(t *testing.T) {
	type config struct {
		Verbose   bool     `opts:"short=v"`
		Output    string   `opts:"short=o"`
		Jobs      int      `opts:"short=j"`
		Includes  []string `opts:"short=I"`
		Ports     []uint16 `opts:"short=p"`
		Timeout   time.Duration
		Addr      net.IP
		Level     string `opts:"default=info"`
		Untouched string
		Rest      []string `opts:"args"`
	}

	cfg := config{Untouched: "keep"}
	reg, err := BuildFromStruct(&cfg)
	require.NoError(t, err)

	po, err := reg.Parse([]string{
		"exe", "-v", "-o", "a.out", "-j", "0x10",
		"-I", "x", "y", "-I", "z",
		"-p", "80", "443",
		"--timeout", "1m30s",
		"--addr", "10.0.0.1",
		"-o", "b.out", "rest1", "rest2",
	})
	require.NoError(t, err)
	require.NoError(t, Decode(po, &cfg))

	assert.True(t, cfg.Verbose)
	assert.Equal(t, "b.out", cfg.Output)
	assert.Equal(t, 16, cfg.Jobs)
	assert.Equal(t, []string{"x", "y", "z"}, cfg.Includes)
	assert.Equal(t, []uint16{80, 443}, cfg.Ports)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, "10.0.0.1", cfg.Addr.String())
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "keep", cfg.Untouched)
	assert.Equal(t, []string{"rest1", "rest2"}, cfg.Rest)
}

func TestDecodeInvalidValue(t *testing.T) {
	cfg := struct {
		Jobs int `opts:"short=j"`
	}{}
	reg, err := BuildFromStruct(&cfg)
	require.NoError(t, err)

	po, err := reg.Parse([]string{"exe", "-j", "many"})
	require.NoError(t, err)

	err = Decode(po, &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid value "many" for -j`)
}

func TestStructDefinitionsNilSliceElements(t *testing.T) {
	one := 1
	cfg := struct {
		Ports []*int
	}{
		Ports: []*int{nil, &one, nil},
	}

	defs, err := StructDefinitions(&cfg)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, []string{"1"}, defs[0].Defaults)

	cfg.Ports = []*int{nil}
	defs, err = StructDefinitions(&cfg)
	require.NoError(t, err)
	assert.Nil(t, defs[0].Defaults)
}

func TestDecodeScalarWithoutValues(t *testing.T) {
	type config struct {
		Count int    `opts:"min=0"`
		Name  string `opts:"min=0"`
	}
	cfg := config{Count: 3}
	reg, err := BuildFromStruct(&cfg)
	require.NoError(t, err)

	cases := []struct {
		args     []string
		expected config
	}{
		{[]string{"exe", "--count"}, config{Count: 3}},
		{[]string{"exe", "--count", "5", "--count"}, config{Count: 3}},
		{[]string{"exe", "--count", "--count", "5", "--name"}, config{Count: 5}},
	}

	for _, c := range cases {
		got := config{Count: 3}
		po, err := reg.Parse(c.args)
		require.NoError(t, err, "%v", c.args)
		require.NoError(t, Decode(po, &got), "%v", c.args)
		assert.Equal(t, c.expected, got, "%v", c.args)
	}
}
