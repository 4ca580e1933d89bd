package glomers

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/mosaicnetworks/glomers/src/common"
	"github.com/mosaicnetworks/glomers/src/config"
	"github.com/mosaicnetworks/glomers/src/ids"
	"github.com/mosaicnetworks/glomers/src/message"
	"github.com/mosaicnetworks/glomers/src/net"
	"github.com/mosaicnetworks/glomers/src/node"
	"github.com/mosaicnetworks/glomers/src/service"
	"github.com/mosaicnetworks/glomers/src/version"
	"github.com/sirupsen/logrus"
)

// Glomers is a struct containing the key objects of a glomers node.
type Glomers struct {
	Config    *config.Config
	Node      *node.Node
	Transport net.Transport
	Generator ids.Generator
	Service   *service.Service
	Metrics   *service.Metrics

	// serializes Step with the service's reads
	nodeLock sync.Mutex

	logger *logrus.Entry
}

// NewGlomers is a factory method to produce a Glomers instance.
func NewGlomers(c *config.Config) *Glomers {
	engine := &Glomers{
		Config: c,
		logger: c.Logger(),
	}

	return engine
}

// Init initialises the engine: transport, generator, node and service.
func (g *Glomers) Init() error {
	g.logger.WithFields(logrus.Fields{
		"version":        version.Version,
		"service-listen": g.Config.ServiceAddr,
		"datadir":        g.Config.DataDir,
	}).Debug("Init glomers")

	g.initTransport()
	g.initGenerator()
	g.initNode()
	g.initService()

	return nil
}

func (g *Glomers) initTransport() {
	if g.Transport == nil {
		g.Transport = net.NewStdioTransport(os.Stdin, os.Stdout, g.logger.WithField("component", "transport"))
	}
}

func (g *Glomers) initGenerator() {
	if g.Generator == nil {
		g.Generator = ids.NewUUIDGenerator()
	}
}

func (g *Glomers) initNode() {
	g.Node = node.NewNode(
		node.NewConfig(g.logger.WithField("component", "node")),
		g.Generator,
	)
}

func (g *Glomers) initService() {
	g.Metrics = service.NewMetrics(version.Version)

	if g.Config.ServiceAddr != "" {
		g.Service = service.NewService(
			g.Config.ServiceAddr,
			g,
			g.Metrics,
			g.logger.WithField("component", "service"),
		)
	}
}

// Run starts the service, if any, and pumps frames until the input is
// exhausted, in which case it returns nil, or until a fatal error occurs.
func (g *Glomers) Run() error {
	if g.Service != nil {
		go g.Service.Serve()
	}

	defer func() {
		if err := g.Transport.Close(); err != nil {
			g.logger.WithError(err).Warn("Closing transport")
		}
	}()

	for {
		req, err := g.Transport.Receive()
		if err == io.EOF {
			g.logger.Debug("Input exhausted")
			return nil
		}
		if err != nil {
			return g.fail(err)
		}

		reply, ok, err := g.step(req)
		if err != nil {
			return g.fail(err)
		}
		if !ok {
			continue
		}

		if err := g.Transport.Send(reply); err != nil {
			return g.fail(err)
		}
		g.Metrics.ObserveReply(bodyType(reply))
	}
}

func (g *Glomers) step(req message.Message) (message.Message, bool, error) {
	t := bodyType(req)
	start := time.Now()

	g.Metrics.ObserveFrame(t)

	g.logger.WithFields(logrus.Fields{
		"type": t,
		"src":  req.Src,
		"dest": req.Dest,
	}).Debug("Frame")

	g.nodeLock.Lock()
	reply, ok, err := g.Node.Step(req)
	g.nodeLock.Unlock()

	g.Metrics.ObserveStep(t, time.Since(start))

	return reply, ok, err
}

func (g *Glomers) fail(err error) error {
	kind := "Other"
	if perr, ok := err.(common.ProtocolErr); ok {
		kind = perr.Type().String()
	}

	g.Metrics.ObserveError(kind)
	g.logger.WithFields(logrus.Fields{
		"kind":  kind,
		"error": err,
	}).Error("Fatal error")

	return err
}

// GetStats returns the node's stats. It is safe to call while Run is active.
func (g *Glomers) GetStats() map[string]string {
	g.nodeLock.Lock()
	defer g.nodeLock.Unlock()
	return g.Node.GetStats()
}

// Neighbors returns a copy of the node's neighbors.
func (g *Glomers) Neighbors() []string {
	g.nodeLock.Lock()
	defer g.nodeLock.Unlock()
	return g.Node.Neighbors()
}

// Messages returns a copy of the broadcast values received by the node.
func (g *Glomers) Messages() []int {
	g.nodeLock.Lock()
	defer g.nodeLock.Unlock()
	return g.Node.Messages()
}

func bodyType(m message.Message) string {
	if m.Body == nil {
		return "none"
	}
	return string(m.Body.Type())
}
