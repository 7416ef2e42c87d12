package carpool

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/session"
)

// Carpooling list tabs.
const (
	TabAvailable = "disponibles"
	TabMine      = "mis-rutas"
	TabHistory   = "historial"
)

// Tabs in display order.
var Tabs = []string{TabAvailable, TabMine, TabHistory}

var (
	ErrRideFull      = errors.New("la ruta no tiene asientos disponibles")
	ErrOwnRide       = errors.New("no puedes unirte a tu propia ruta")
	ErrAlreadyJoined = errors.New("ya solicitaste unirte a esta ruta")
	errNoJoinArmed   = errors.New("no join request in progress")
	errNoDeleteArmed = errors.New("no delete in progress")
)

// NewRide is the create/edit form input.
type NewRide struct {
	Origin        string `json:"punto_inicio" validate:"required,min=3,max=200"`
	Destination   string `json:"punto_destino" validate:"required,min=3,max=200"`
	DepartureTime string `json:"hora_salida" validate:"required,hora"`
	Days          string `json:"dias_disponibles" validate:"required,dias_ruta"`
	Capacity      int    `json:"capacidad_ruta" validate:"gte=1,lte=8"`
	Stops         []Stop `json:"paradas,omitempty"`
}

func (nr *NewRide) Validate(validate *validator.Validate) error {
	nr.Origin = core.CleanString(nr.Origin)
	nr.Destination = core.CleanString(nr.Destination)
	nr.DepartureTime = core.NormalizeHora(nr.DepartureTime)
	return validate.Struct(nr)
}

// pendingJoin is the two-step join sub-flow: armed with a ride, optional
// pickup location, then submitted. The pickup step never blocks submission.
type pendingJoin struct {
	rideID string
	pickup string
}

// Controller owns the ride lists and every carpooling mutation.
type Controller struct {
	gw       Gateway
	geo      Geocoder
	router   Router
	sess     *session.Session
	conf     *core.Config
	logger   core.Logger
	validate *validator.Validate

	mu        sync.Mutex
	tab       string
	available []Ride
	mine      MyRides
	join      *pendingJoin
	deleteID  string

	Banner core.Banner
}

func NewController(
	gw Gateway,
	geo Geocoder,
	router Router,
	sess *session.Session,
	conf *core.Config,
	logger core.Logger,
	validate *validator.Validate,
	bus *core.Broadcast,
) *Controller {
	c := &Controller{
		gw:       gw,
		geo:      geo,
		router:   router,
		sess:     sess,
		conf:     conf,
		logger:   logger,
		validate: validate,
		tab:      TabAvailable,
	}
	// out-of-band notification (e.g. a join request was accepted) tells us
	// to reload whichever list is active
	bus.Subscribe(core.TopicCarpoolingUpdated, func() { c.Load(context.Background()) })
	return c
}

func (c *Controller) Tab() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tab
}

func (c *Controller) SetTab(ctx context.Context, tab string) {
	c.mu.Lock()
	c.tab = tab
	c.mu.Unlock()
	c.Load(ctx)
}

// Load refreshes both the available list and the session user's own rides.
func (c *Controller) Load(ctx context.Context) {
	rides, err := c.gw.Rides(ctx, 0, c.conf.API.PageSize)
	if err != nil {
		c.logger.Error("loading rides", err, c.sess.User())
		c.Banner.Show(core.BannerError, core.DisplayError(err, "Error al cargar rutas"), c.conf.BannerDelay)
	} else {
		c.mu.Lock()
		c.available = rides
		c.mu.Unlock()
	}

	mine, err := c.gw.MyRides(ctx)
	if err != nil {
		c.logger.Error("loading own rides", err, c.sess.User())
		c.Banner.Show(core.BannerError, core.DisplayError(err, "Error al cargar mis rutas"), c.conf.BannerDelay)
		return
	}
	c.mu.Lock()
	c.mine = mine
	c.mu.Unlock()
}

// Available lists open rides from other drivers.
func (c *Controller) Available() []Ride {
	c.mu.Lock()
	defer c.mu.Unlock()
	self := c.sess.User().ID
	var out []Ride
	for _, r := range c.available {
		if r.Open() && r.DriverID != self {
			out = append(out, r)
		}
	}
	return out
}

// Driving lists the session user's own open rides.
func (c *Controller) Driving() []Ride {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Ride
	for _, r := range c.mine.AsDriver {
		if r.Open() {
			out = append(out, r)
		}
	}
	return out
}

// Riding lists join requests that are still live (not cancelled/rejected).
func (c *Controller) Riding() []JoinRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []JoinRequest
	for _, jr := range c.mine.AsPassenger {
		if jr.State != JoinCancelled && jr.State != JoinRejected {
			if jr.Ride == nil || jr.Ride.Open() {
				out = append(out, jr)
			}
		}
	}
	return out
}

// History lists the cancelled and rejected passenger entries.
func (c *Controller) History() []JoinRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []JoinRequest
	for _, jr := range c.mine.AsPassenger {
		if jr.State == JoinCancelled || jr.State == JoinRejected {
			out = append(out, jr)
		}
	}
	return out
}

// Create validates and creates a ride, then reloads the lists.
func (c *Controller) Create(ctx context.Context, nr NewRide) error {
	if err := nr.Validate(c.validate); err != nil {
		return err
	}
	if _, err := c.gw.CreateRide(ctx, nr); err != nil {
		c.Banner.Show(core.BannerError, core.DisplayError(err, "Error al crear ruta"), c.conf.BannerDelay)
		return err
	}
	c.Banner.Show(core.BannerSuccess, "Ruta creada exitosamente", c.conf.BannerDelay)
	c.Load(ctx)
	return nil
}

func (c *Controller) Update(ctx context.Context, id string, nr NewRide) error {
	if err := nr.Validate(c.validate); err != nil {
		return err
	}
	if _, err := c.gw.UpdateRide(ctx, id, nr); err != nil {
		c.Banner.Show(core.BannerError, core.DisplayError(err, "Error al actualizar ruta"), c.conf.BannerDelay)
		return err
	}
	c.Banner.Show(core.BannerSuccess, "Ruta actualizada exitosamente", c.conf.BannerDelay)
	c.Load(ctx)
	return nil
}

// RequestDelete/ConfirmDelete mirror the feed's delete confirmation gate.
func (c *Controller) RequestDelete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleteID = id
}

func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleteID = ""
}

func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	id := c.deleteID
	c.deleteID = ""
	c.mu.Unlock()
	if id == "" {
		return errNoDeleteArmed
	}
	if err := c.gw.DeleteRide(ctx, id); err != nil {
		c.Banner.Show(core.BannerError, core.DisplayError(err, "Error al eliminar ruta"), c.conf.BannerDelay)
		return err
	}
	c.Banner.Show(core.BannerSuccess, "Ruta eliminada", c.conf.BannerDelay)
	c.Load(ctx)
	return nil
}

// CanJoin reports whether the join control is enabled for a ride: open,
// seats left, not the session user's own ride, no live request yet.
func (c *Controller) CanJoin(ride Ride) error {
	if ride.Full() {
		return ErrRideFull
	}
	if ride.DriverID == c.sess.User().ID {
		return ErrOwnRide
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, jr := range c.mine.AsPassenger {
		if jr.RideID == ride.ID && (jr.State == JoinPending || jr.State == JoinAccepted) {
			return ErrAlreadyJoined
		}
	}
	return nil
}

// StartJoin opens the pickup-location prompt for a ride. A blocked ride
// issues no request and arms nothing.
func (c *Controller) StartJoin(ride Ride) error {
	if err := c.CanJoin(ride); err != nil {
		c.Banner.Show(core.BannerError, err.Error(), c.conf.BannerDelay)
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.join = &pendingJoin{rideID: ride.ID}
	return nil
}

// SetPickup records a free-text pickup location for the armed join.
func (c *Controller) SetPickup(location string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.join != nil {
		c.join.pickup = core.CleanString(location)
	}
}

// UsePositionAsPickup reverse-geocodes the current position into the pickup
// field. A geocoder failure leaves the field empty and never blocks the
// join; the location step is optional.
func (c *Controller) UsePositionAsPickup(ctx context.Context, pos Coordinate) {
	name, err := c.geo.ReverseGeocode(ctx, pos)
	if err != nil {
		c.logger.Warn("reverse geocoding pickup", err)
		return
	}
	c.SetPickup(name)
}

func (c *Controller) CancelJoinFlow() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.join = nil
}

// SubmitJoin issues the armed join request, with or without a pickup.
func (c *Controller) SubmitJoin(ctx context.Context) error {
	c.mu.Lock()
	join := c.join
	c.join = nil
	c.mu.Unlock()
	if join == nil {
		return errNoJoinArmed
	}

	jr, err := c.gw.RequestJoin(ctx, NewJoinRequest{RideID: join.rideID, Pickup: join.pickup})
	if err != nil {
		c.Banner.Show(core.BannerError, core.DisplayError(err, "Error al solicitar unirse a la ruta"), c.conf.BannerDelay)
		return err
	}

	c.mu.Lock()
	c.mine.AsPassenger = append(c.mine.AsPassenger, jr)
	c.mu.Unlock()
	c.Banner.Show(core.BannerSuccess, "Solicitud enviada al conductor", c.conf.BannerDelay)
	return nil
}

// AcceptRequest / RejectRequest are the driver-side responses.
func (c *Controller) AcceptRequest(ctx context.Context, requestID string) error {
	return c.setJoinState(ctx, requestID, JoinAccepted, "Pasajero aceptado")
}

func (c *Controller) RejectRequest(ctx context.Context, requestID string) error {
	return c.setJoinState(ctx, requestID, JoinRejected, "Pasajero rechazado")
}

func (c *Controller) setJoinState(ctx context.Context, requestID, state, okMsg string) error {
	if err := c.gw.SetJoinState(ctx, requestID, state); err != nil {
		c.Banner.Show(core.BannerError, core.DisplayError(err, "Error al actualizar solicitud"), c.conf.BannerDelay)
		return err
	}
	c.Banner.Show(core.BannerSuccess, okMsg, c.conf.BannerDelay)
	c.Load(ctx)
	return nil
}

// CancelRequest withdraws the session user's own join request.
func (c *Controller) CancelRequest(ctx context.Context, requestID string) error {
	if err := c.gw.CancelJoin(ctx, requestID); err != nil {
		c.Banner.Show(core.BannerError, core.DisplayError(err, "Error al cancelar solicitud"), c.conf.BannerDelay)
		return err
	}
	c.mu.Lock()
	for i := range c.mine.AsPassenger {
		if c.mine.AsPassenger[i].ID == requestID {
			c.mine.AsPassenger[i].State = JoinCancelled
		}
	}
	c.mu.Unlock()
	c.Banner.Show(core.BannerSuccess, "Solicitud cancelada", c.conf.BannerDelay)
	return nil
}

// PlanRoute resolves the picked origin/destination pair into a drawable
// path via the routing collaborator.
func (c *Controller) PlanRoute(ctx context.Context, origin, destination Coordinate) ([]Coordinate, error) {
	path, err := c.router.Route(ctx, origin, destination)
	if err != nil {
		return nil, errors.Wrap(err, "resolving route")
	}
	return path, nil
}
