package carpool

import "time"

// Ride states.
const (
	RideActive    = "activa"
	RideCancelled = "cancelada"
	RideCompleted = "completada"
)

// Join request states.
const (
	JoinPending   = "pendiente"
	JoinAccepted  = "aceptado"
	JoinRejected  = "rechazado"
	JoinCancelled = "cancelado"
)

type Stop struct {
	ID       string `json:"id_parada,omitempty"`
	Order    int    `json:"orden_parada"`
	Location string `json:"ubicacion_parada"`
}

type Ride struct {
	ID            string    `json:"id_ruta"`
	DriverID      string    `json:"id_user"`
	Origin        string    `json:"punto_inicio"`
	Destination   string    `json:"punto_destino"`
	DepartureTime string    `json:"hora_salida"` // HH:MM:SS
	Days          string    `json:"dias_disponibles"`
	Capacity      int       `json:"capacidad_ruta"`
	Accepted      int       `json:"pasajeros_aceptados"`
	Requests      int       `json:"pasajeros_count"`
	State         string    `json:"estado,omitempty"`
	Active        *bool     `json:"activa,omitempty"`
	Stops         []Stop    `json:"paradas,omitempty"`
	CreatedAt     time.Time `json:"fecha_creacion,omitempty"`
}

// Cancelled-or-completed rides never show in the available/own lists.
func (r Ride) Open() bool {
	if r.Active != nil && !*r.Active {
		return false
	}
	return r.State != RideCancelled && r.State != RideCompleted
}

func (r Ride) Full() bool { return r.Accepted >= r.Capacity }

type JoinRequest struct {
	ID        string                 `json:"id_pasajero_ruta"`
	RideID    string                 `json:"id_ruta"`
	UserID    string                 `json:"id_user"`
	State     string                 `json:"estado"`
	Pickup    string                 `json:"punto_recogida,omitempty"`
	JoinedAt  time.Time              `json:"fecha_union"`
	Passenger map[string]interface{} `json:"pasajero,omitempty"`
	Ride      *Ride                  `json:"ruta,omitempty"`
}

// MyRides is the driver/passenger split the backend returns for the
// session user.
type MyRides struct {
	AsDriver    []Ride        `json:"como_conductor"`
	AsPassenger []JoinRequest `json:"como_pasajero"`
}

// NewJoinRequest is the wire payload for POST /pasajeros.
type NewJoinRequest struct {
	RideID string `json:"id_ruta"`
	Pickup string `json:"punto_recogida,omitempty"`
}

// Coordinate is a WGS84 position used by the map collaborators.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
