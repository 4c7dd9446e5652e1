package busobj

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ostraca/busobj/pkg/wire"
)

func demoInterface() *Interface {
	return NewInterface().
		AddMethod("Frobnicate", NewMethod(func(*Call) ([]wire.Value, *CallError) {
			return nil, nil
		}).
			AddArgument("input", "s").
			AddResult("output", "s").
			Annotate("org.freedesktop.DBus.Deprecated", "true")).
		AddProperty("Mode", NewReadWriteProperty("s",
			func() (wire.Value, *CallError) { return wire.String("idle"), nil },
			func(wire.Value) *CallError { return nil }).
			Annotate("org.freedesktop.DBus.Property.EmitsChangedSignal", "false")).
		AddSignal("Changed", NewSignal().AddArgument("mode", "s"))
}

func introspectXML(t *testing.T, reg *Registry) string {
	t.Helper()
	reply := dispatchCall(t, reg, IfaceIntrospectable, "Introspect")
	require.Equal(t, wire.MsgReturn, reply.Type)
	require.Len(t, reply.Body, 1)
	xml, ok := reply.Body[0].AsString()
	require.True(t, ok)
	return xml
}

func TestIntrospect_Document(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.AddInterface("com.example.Demo", demoInterface()))
	require.NoError(t, reg.Finalize([]string{"store", "net"}))

	xml := introspectXML(t, reg)

	require.True(t, strings.HasPrefix(xml, "<!DOCTYPE node"))
	require.Contains(t, xml, `<interface name="com.example.Demo">`)
	require.Contains(t, xml, `<property name="Mode" type="s" access="readwrite">`)
	require.Contains(t, xml, `<annotation name="org.freedesktop.DBus.Property.EmitsChangedSignal" value="false" />`)
	require.Contains(t, xml, `<method name="Frobnicate">`)
	require.Contains(t, xml, `<arg name="input" type="s" direction="in" />`)
	require.Contains(t, xml, `<arg name="output" type="s" direction="out" />`)
	require.Contains(t, xml, `<signal name="Changed">`)
	require.Contains(t, xml, `<arg name="mode" type="s" direction="out" />`)
	require.Contains(t, xml, `<node name="store" />`)
	require.Contains(t, xml, `<node name="net" />`)

	for _, name := range []string{"com.example.Demo", IfaceIntrospectable, IfacePeer, IfaceProperties} {
		require.Equal(t, 1, strings.Count(xml, `<interface name="`+name+`">`),
			"every interface is listed exactly once")
	}

	// Interfaces are rendered in name order.
	require.Less(t,
		strings.Index(xml, `<interface name="com.example.Demo">`),
		strings.Index(xml, `<interface name="`+IfaceIntrospectable+`">`))
	require.Less(t,
		strings.Index(xml, `<interface name="`+IfacePeer+`">`),
		strings.Index(xml, `<interface name="`+IfaceProperties+`">`))

	// Children come in source order.
	require.Less(t, strings.Index(xml, `<node name="store" />`), strings.Index(xml, `<node name="net" />`))
}

func TestIntrospect_TracksRegistrations(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.AddInterface("com.example.A", NewInterface()))

	before := reg.introspect(nil)
	require.NotContains(t, before, `<interface name="com.example.B">`)

	require.NoError(t, reg.AddInterface("com.example.B", NewInterface()))
	after := reg.introspect(nil)
	require.Contains(t, after, `<interface name="com.example.B">`)

	require.NoError(t, reg.Finalize(nil))
	require.Equal(t, reg.introspect(nil), reg.introspect(nil),
		"structural output is stable once finalized")
}

func TestIntrospect_EscapesAttributeValues(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.AddInterface("com.example.Esc",
		NewInterface().AddMethod("M", NewMethod(func(*Call) ([]wire.Value, *CallError) {
			return nil, nil
		}).Annotate("com.example.Note", `a<b>&"c"`))))

	xml := reg.introspect(nil)
	require.Contains(t, xml, `value="a&lt;b&gt;&amp;&quot;c&quot;"`)
}
