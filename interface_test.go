package busobj

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ostraca/busobj/pkg/wire"
)

func TestInterface_ReadOnlyProperty(t *testing.T) {
	iface := NewInterface().
		AddProperty("Version", NewReadOnlyProperty("s", func() (wire.Value, *CallError) {
			return wire.String("1.2.3"), nil
		}))

	vals, cerr := iface.getPropertyValue("Version")
	require.Nil(t, cerr)
	require.Equal(t, []wire.Value{wire.String("1.2.3")}, vals)

	_, cerr = iface.setPropertyValue("Version", wire.String("9.9.9"))
	require.NotNil(t, cerr)
	require.Equal(t, NameFailed, cerr.Name)
	require.Contains(t, cerr.Message, "read-only")

	vals, cerr = iface.getPropertyValue("Version")
	require.Nil(t, cerr)
	require.Equal(t, []wire.Value{wire.String("1.2.3")}, vals, "a rejected set must not change the value")
}

func TestInterface_WriteOnlyProperty(t *testing.T) {
	var stored wire.Value
	iface := NewInterface().
		AddProperty("Secret", NewWriteOnlyProperty("s", func(v wire.Value) *CallError {
			stored = v
			return nil
		}))

	_, cerr := iface.getPropertyValue("Secret")
	require.NotNil(t, cerr)
	require.Equal(t, NameFailed, cerr.Name)
	require.Contains(t, cerr.Message, "write-only")

	vals, cerr := iface.setPropertyValue("Secret", wire.String("hunter2"))
	require.Nil(t, cerr)
	require.Empty(t, vals, "set succeeds with an empty result list")
	require.Equal(t, wire.String("hunter2"), stored)

	require.NotContains(t, iface.propertyMap(), "Secret", "write-only properties are omitted, not reported")
}

func TestInterface_ReadWriteProperty(t *testing.T) {
	level := wire.Uint32(3)
	iface := NewInterface().
		AddProperty("Level", NewReadWriteProperty("u",
			func() (wire.Value, *CallError) { return level, nil },
			func(v wire.Value) *CallError {
				level = v
				return nil
			}))

	vals, cerr := iface.getPropertyValue("Level")
	require.Nil(t, cerr)
	require.Equal(t, []wire.Value{wire.Uint32(3)}, vals)

	_, cerr = iface.setPropertyValue("Level", wire.Uint32(7))
	require.Nil(t, cerr)

	vals, cerr = iface.getPropertyValue("Level")
	require.Nil(t, cerr)
	require.Equal(t, []wire.Value{wire.Uint32(7)}, vals)
}

func TestInterface_UnknownProperty(t *testing.T) {
	iface := NewInterface()

	_, cerr := iface.getPropertyValue("Nope")
	require.NotNil(t, cerr)
	require.Equal(t, NameUnknownProperty, cerr.Name)

	_, cerr = iface.setPropertyValue("Nope", wire.Bool(true))
	require.NotNil(t, cerr)
	require.Equal(t, NameUnknownProperty, cerr.Name)
}

func TestInterface_PropertyMapSkipsFailedReads(t *testing.T) {
	iface := NewInterface().
		AddProperty("Good", NewReadOnlyProperty("s", func() (wire.Value, *CallError) {
			return wire.String("ok"), nil
		})).
		AddProperty("Flaky", NewReadOnlyProperty("s", func() (wire.Value, *CallError) {
			return wire.Value{}, NewCallError(NameFailed, "backend down")
		}))

	props := iface.propertyMap()
	require.Equal(t, map[string]wire.Value{"Good": wire.String("ok")}, props,
		"failed reads are dropped, never surfaced")
}
