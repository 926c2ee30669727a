package internal

import "context"

type editorNameKey struct{}

// WithEditorName records a name the transport already knows for the person
// on the other end, such as an ssh user.
func WithEditorName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, editorNameKey{}, name)
}

// EditorName returns the name set by WithEditorName, or "".
func EditorName(ctx context.Context) string {
	name, _ := ctx.Value(editorNameKey{}).(string)
	return name
}
