package broker

// ContentTopic enumerates the notifications a Content emits.
type ContentTopic int

const (
	// DataChanged fires after Publish installed a new generator.
	DataChanged ContentTopic = iota
)

// Metadata is free-form information produced alongside a content's data,
// e.g. units, ensemble name or a display label.
type Metadata map[string]any

// GeneratedData is the result of one generator invocation. Data and Metadata
// always come from the same call.
type GeneratedData struct {
	Data     []DataPoint
	Metadata Metadata
}

// Generator computes a content's data on demand. It runs synchronously on
// the first read after each Publish.
type Generator func() (GeneratedData, error)

// ContentDefinition describes a Content to be created by Channel.ReplaceContents.
type ContentDefinition struct {
	ID          string
	DisplayName string
	Generator   Generator
}

// Content is a named, lazily computed data series owned by a Channel.
type Content struct {
	id          string
	displayName string
	channel     *Channel

	generator Generator
	version   uint64
	cached    *GeneratedData
	calls     int

	obs observers[ContentTopic]
}

func newContent(ch *Channel, def ContentDefinition) *Content {
	return &Content{
		id:          def.ID,
		displayName: def.DisplayName,
		channel:     ch,
		generator:   def.Generator,
	}
}

func (c *Content) ID() string          { return c.id }
func (c *Content) DisplayName() string { return c.displayName }

// GeneratorCalls returns how many times a generator has been invoked for
// this content.
func (c *Content) GeneratorCalls() int { return c.calls }

// Data returns the cached data series, computing it on the first call after
// an invalidation. The returned slice must be treated as read-only.
func (c *Content) Data() ([]DataPoint, error) {
	g, err := c.load()
	if err != nil {
		return nil, err
	}
	return g.Data, nil
}

// Metadata returns the metadata produced by the same generator invocation as Data.
func (c *Content) Metadata() (Metadata, error) {
	g, err := c.load()
	if err != nil {
		return nil, err
	}
	return g.Metadata, nil
}

// generated returns data and metadata from one generator invocation.
func (c *Content) generated() (*GeneratedData, error) { return c.load() }

// load runs the generator at most once per Publish. A failed invocation
// caches nothing, so the next read retries.
func (c *Content) load() (*GeneratedData, error) {
	if c.cached != nil {
		return c.cached, nil
	}
	if c.generator == nil {
		c.cached = &GeneratedData{}
		return c.cached, nil
	}
	gen, version := c.generator, c.version
	c.calls++
	out, err := gen()
	if err != nil {
		return nil, &GeneratorError{ContentID: c.id, Err: err}
	}
	// Republished while generating: hand back this result but keep the cache invalid.
	if c.version != version {
		return &out, nil
	}
	c.cached = &out
	return c.cached, nil
}

// Publish installs a new generator, invalidates the cached data and
// metadata and notifies DataChanged subscribers. It is the only mutator.
func (c *Content) Publish(gen Generator) {
	c.generator = gen
	c.version++
	c.cached = nil
	if c.channel != nil {
		c.channel.manager.publish(EventContentPublished, map[string]any{
			"channel_id": c.channel.id,
			"content_id": c.id,
		})
	}
	c.obs.notify(DataChanged)
}

// Subscribe registers fn for topic and returns a handle for Unsubscribe.
func (c *Content) Subscribe(topic ContentTopic, fn func()) SubscriptionID {
	return c.obs.add(topic, fn)
}

// Unsubscribe removes a callback. Unknown handles are ignored.
func (c *Content) Unsubscribe(topic ContentTopic, id SubscriptionID) {
	c.obs.remove(topic, id)
}
