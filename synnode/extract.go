package synnode

// Identifier returns the text of the first Identifier leaf found in root's
// subtree.
func Identifier(root Node) (string, bool) {
	n, ok := Find(root, KindIdentifier)
	if !ok {
		return "", false
	}
	return n.Text(), true
}

// Keyword returns the text of the first Keyword leaf found in root's
// subtree.
func Keyword(root Node) (string, bool) {
	n, ok := Find(root, KindKeyword)
	if !ok {
		return "", false
	}
	return n.Text(), true
}

// Symbol returns the text of the first Symbol leaf found in root's subtree.
func Symbol(root Node) (string, bool) {
	n, ok := Find(root, KindSymbol)
	if !ok {
		return "", false
	}
	return n.Text(), true
}

// GetString concatenates every Locate token under root, in source order,
// skipping whatever falls inside a WhiteSpace subtree. It renders an
// expression subtree back to the source text it covers.
func GetString(root Node) (string, bool) {
	var out string
	var skipDepth int
	Walk(root, func(e Event) {
		switch e.Node.Kind() {
		case KindWhiteSpace:
			if e.Kind == Enter {
				skipDepth++
			} else {
				skipDepth--
			}
		case KindLocate:
			if e.Kind == Enter && skipDepth == 0 {
				out += e.Node.Text()
			}
		}
	})
	if out == "" {
		return "", false
	}
	return out, true
}

// GetComment collects every Locate token that falls strictly inside a
// Comment subtree of root, one slice element per token, in source order.
func GetComment(root Node) ([]string, bool) {
	var out []string
	var inComment int
	Walk(root, func(e Event) {
		switch e.Node.Kind() {
		case KindComment:
			if e.Kind == Enter {
				inComment++
			} else {
				inComment--
			}
		case KindLocate:
			if e.Kind == Enter && inComment > 0 {
				out = append(out, e.Node.Text())
			}
		}
	})
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}
