package busobj

import (
	"fmt"
	"strings"
)

const introspectHeader = `<!DOCTYPE node PUBLIC "-//freedesktop//DTD D-BUS Object Introspection 1.0//EN"
 "http://www.freedesktop.org/standards/dbus/1.0/introspect.dtd">
`

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// introspect renders the current registry contents plus the known child
// object names into an introspection document. It is recomputed on every
// call so output tracks the live registry; after finalization the
// structure is stable across calls.
func (reg *Registry) introspect(children []string) string {
	reg.lk.RLock()
	defer reg.lk.RUnlock()

	var b strings.Builder
	b.WriteString(introspectHeader)
	b.WriteString("<node>\n")
	for _, name := range sortedKeys(reg.ifaces) {
		writeInterface(&b, " ", name, reg.ifaces[name])
	}
	for _, child := range children {
		fmt.Fprintf(&b, " <node name=\"%s\" />\n", xmlEscaper.Replace(child))
	}
	b.WriteString("</node>\n")
	return b.String()
}

func writeInterface(b *strings.Builder, indent, name string, iface *Interface) {
	inner := indent + " "
	fmt.Fprintf(b, "%s<interface name=\"%s\">\n", indent, xmlEscaper.Replace(name))
	for _, pname := range sortedKeys(iface.properties) {
		writeProperty(b, inner, pname, iface.properties[pname])
	}
	for _, mname := range sortedKeys(iface.methods) {
		writeMethod(b, inner, mname, iface.methods[mname])
	}
	for _, sname := range sortedKeys(iface.signals) {
		writeSignal(b, inner, sname, iface.signals[sname])
	}
	fmt.Fprintf(b, "%s</interface>\n", indent)
}

func writeProperty(b *strings.Builder, indent, name string, prop *Property) {
	inner := indent + " "
	fmt.Fprintf(b, "%s<property name=\"%s\" type=\"%s\" access=\"%s\">\n",
		indent, xmlEscaper.Replace(name), xmlEscaper.Replace(prop.signature), prop.access)
	for _, ann := range prop.anns {
		writeAnnotation(b, inner, ann)
	}
	fmt.Fprintf(b, "%s</property>\n", indent)
}

func writeMethod(b *strings.Builder, indent, name string, method *Method) {
	inner := indent + " "
	fmt.Fprintf(b, "%s<method name=\"%s\">\n", indent, xmlEscaper.Replace(name))
	for _, arg := range method.inArgs {
		writeArg(b, inner, "in", arg)
	}
	for _, arg := range method.outArgs {
		writeArg(b, inner, "out", arg)
	}
	for _, ann := range method.anns {
		writeAnnotation(b, inner, ann)
	}
	fmt.Fprintf(b, "%s</method>\n", indent)
}

func writeSignal(b *strings.Builder, indent, name string, signal *Signal) {
	inner := indent + " "
	fmt.Fprintf(b, "%s<signal name=\"%s\">\n", indent, xmlEscaper.Replace(name))
	for _, arg := range signal.args {
		writeArg(b, inner, "out", arg)
	}
	for _, ann := range signal.anns {
		writeAnnotation(b, inner, ann)
	}
	fmt.Fprintf(b, "%s</signal>\n", indent)
}

func writeArg(b *strings.Builder, indent, direction string, arg Argument) {
	fmt.Fprintf(b, "%s<arg name=\"%s\" type=\"%s\" direction=\"%s\" />\n",
		indent, xmlEscaper.Replace(arg.Name), xmlEscaper.Replace(arg.Signature), direction)
}

func writeAnnotation(b *strings.Builder, indent string, ann Annotation) {
	fmt.Fprintf(b, "%s<annotation name=\"%s\" value=\"%s\" />\n",
		indent, xmlEscaper.Replace(ann.Name), xmlEscaper.Replace(ann.Value))
}
