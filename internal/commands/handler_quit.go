package commands

import "context"

// QuitHandlerFactory creates handlers that end the actor's connection.
type QuitHandlerFactory struct{}

func (f *QuitHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *QuitHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	message, _ := config["message"].(string)
	if message == "" {
		message = "Goodbye!"
	}

	return func(ctx context.Context, cc *Context) error {
		cc.Actor.Send(message)
		cc.Actor.Quit()
		return nil
	}, nil
}
