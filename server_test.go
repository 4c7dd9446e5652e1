package busobj

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ostraca/busobj/pkg/wire"
)

func TestServer_ObjectPaths(t *testing.T) {
	srv := NewServer("test")

	_, err := srv.Object("/org/app")
	require.NoError(t, err)

	_, err = srv.Object("/org/app")
	require.ErrorIs(t, err, ErrPathRegistered)

	require.ErrorIs(t, srv.RemoveObject("/nope"), ErrNoSuchPath)
	require.NoError(t, srv.RemoveObject("/org/app"))
	require.ErrorIs(t, srv.RemoveObject("/org/app"), ErrNoSuchPath)
}

func TestServer_FinalizeDerivesChildren(t *testing.T) {
	srv := NewServer("test")

	root, err := srv.Object("/org/app")
	require.NoError(t, err)
	for _, path := range []string{"/org/app/store", "/org/app/store/cache", "/org/app/net"} {
		_, err := srv.Object(path)
		require.NoError(t, err)
	}

	require.ErrorIs(t, srv.FinalizeObject("/nope"), ErrNoSuchPath)
	require.NoError(t, srv.FinalizeObject("/org/app"))

	xml := introspectXML(t, root)
	require.Contains(t, xml, `<node name="store" />`)
	require.Contains(t, xml, `<node name="net" />`)
	require.NotContains(t, xml, `<node name="cache" />`, "only direct children are listed")
}

func TestServer_HandleRoutesByPath(t *testing.T) {
	srv := NewServer("test")

	reg, err := srv.Object("/org/app")
	require.NoError(t, err)
	require.NoError(t, reg.AddInterface("com.example.Demo",
		NewInterface().AddMethod("Who", NewMethod(func(*Call) ([]wire.Value, *CallError) {
			return []wire.Value{wire.String("app")}, nil
		}))))

	server, client := wire.Pipe(4)
	defer server.Close()

	handled, err := srv.Handle(server, wire.NewCall("", "/somewhere/else", "com.example.Demo", "Who"))
	require.NoError(t, err)
	require.False(t, handled, "unknown path is not ours")

	msg := wire.NewCall("", "/org/app", "com.example.Demo", "Who")
	msg.Serial = 5
	handled, err = srv.Handle(server, msg)
	require.NoError(t, err)
	require.True(t, handled)

	reply, err := client.Next(time.Second)
	require.NoError(t, err)
	require.Equal(t, []wire.Value{wire.String("app")}, reply.Body)
}

func TestServer_Emit(t *testing.T) {
	srv := NewServer("test")
	server, client := wire.Pipe(4)
	defer server.Close()

	err := srv.Emit(server, "/org/app", "com.example.Demo", "Changed", wire.String("busy"))
	require.NoError(t, err)

	sig, err := client.Next(time.Second)
	require.NoError(t, err)
	require.Equal(t, wire.MsgSignal, sig.Type)
	require.Equal(t, "/org/app", sig.Path)
	require.Equal(t, "com.example.Demo", sig.Iface)
	require.Equal(t, "Changed", sig.Member)
	require.Equal(t, []wire.Value{wire.String("busy")}, sig.Body)
}
