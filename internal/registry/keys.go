package registry

import (
	"github.com/nfrund/tradeskills/internal/pubsub"
	"github.com/nfrund/tradeskills/internal/rendering"
)

// Core service keys, set by the server before modules register.
const (
	PublisherKey  Key[pubsub.Publisher]   = "core.publisher"
	SubscriberKey Key[pubsub.Subscriber]  = "core.subscriber"
	RendererKey   Key[rendering.Renderer] = "core.renderer"
)
