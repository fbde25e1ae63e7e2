package dispatch

const actionSend = "send"

// message is the payload shared by the gateway transports.
type message struct {
	Action  string `json:"action"`
	Channel string `json:"channel"`
	Message string `json:"message"`
	Media   string `json:"media"`
}

func newMessage(channel, text, media string) message {
	return message{
		Action:  actionSend,
		Channel: channel,
		Message: text,
		Media:   media,
	}
}
