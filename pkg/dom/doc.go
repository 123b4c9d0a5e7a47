// Package dom is a headless, in-memory document that implements every
// collaborator the tooltip core needs: panel surfaces, trigger elements,
// click/outside-click/resize delivery and the viewport.
//
// It is deliberately small. Layout is explicit: static nodes carry their
// document offset, absolute nodes carry a position relative to their parent.
// Nothing reflows. Hidden or detached nodes report zero geometry.
//
// Click delivery mirrors a browser's bubbling phase: listeners on the target
// run first, then on each ancestor, until one calls StopPropagation. A click
// that is never stopped reaches the document root and is delivered to
// outside-click listeners.
//
//	doc := dom.New(320, 480)
//	link := doc.Element("help-link", dom.WithOffset(200, 5), dom.WithSize(20, 10),
//	    dom.WithAttr(page.TargetAttr, "help"))
//	doc.Root().Append(link)
//	doc.Click(link)
package dom
