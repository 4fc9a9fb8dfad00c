package pkg

// enum of road passability status
type RoadStatus uint8

const (
	STATUS_PASSABLE RoadStatus = iota
	STATUS_RESTRICTED
	STATUS_BLOCKED
)

func (s RoadStatus) String() string {
	switch s {
	case STATUS_PASSABLE:
		return "passable"
	case STATUS_RESTRICTED:
		return "restricted"
	case STATUS_BLOCKED:
		return "blocked"
	default:
		return "unknown"
	}
}

// ParseRoadStatus parses the wire representation of a road status.
// unknown values map to passable=false via the ok flag.
func ParseRoadStatus(s string) (RoadStatus, bool) {
	switch s {
	case "passable":
		return STATUS_PASSABLE, true
	case "restricted":
		return STATUS_RESTRICTED, true
	case "blocked":
		return STATUS_BLOCKED, true
	default:
		return STATUS_PASSABLE, false
	}
}

// enum of vehicle mode
type VehicleMode uint8

const (
	MODE_STANDARD VehicleMode = iota
	MODE_TALL
)

func (m VehicleMode) String() string {
	switch m {
	case MODE_TALL:
		return "tall"
	default:
		return "standard"
	}
}

func ParseVehicleMode(s string) (VehicleMode, bool) {
	switch s {
	case "standard", "":
		return MODE_STANDARD, true
	case "tall":
		return MODE_TALL, true
	default:
		return MODE_STANDARD, false
	}
}

const (
	INF_WEIGHT float64 = 1e15

	// cost multipliers for restricted roads per vehicle mode.
	// tall vehicles prefer restricted/yellow roads, routing them away from
	// low-clearance passable roads. this is domain policy for the disaster
	// response fleet, not a general statement about "restricted".
	RESTRICTED_MULTIPLIER_STANDARD = 3.0
	RESTRICTED_MULTIPLIER_TALL     = 0.5

	DEFAULT_AVERAGE_SPEED_KMH  = 30.0
	DEFAULT_COORD_PRECISION    = 9    // decimal degrees, ~sub-millimeter
	DEFAULT_SUPPRESSION_WINDOW = 2000 // milliseconds
)

const (
	DEBUG = false
)

type OsmHighwayType uint8

// enum buat osm highway buat routing: https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
const (
	MOTORWAY       OsmHighwayType = 0
	TRUNK          OsmHighwayType = 1
	PRIMARY        OsmHighwayType = 2
	SECONDARY      OsmHighwayType = 3
	TERTIARY       OsmHighwayType = 4
	RESIDENTIAL    OsmHighwayType = 5
	SERVICE        OsmHighwayType = 6
	UNCLASSIFIED   OsmHighwayType = 7
	MOTORWAY_LINK  OsmHighwayType = 8
	TRUNK_LINK     OsmHighwayType = 9
	PRIMARY_LINK   OsmHighwayType = 10
	SECONDARY_LINK OsmHighwayType = 11
	TERTIARY_LINK  OsmHighwayType = 12
	LIVING_STREET  OsmHighwayType = 13
	ROAD           OsmHighwayType = 14
	TRACK          OsmHighwayType = 15
	UNKNOWN        OsmHighwayType = 16
)

func GetHighwayType(roadType string) OsmHighwayType {
	switch roadType {
	case "motorway":
		return MOTORWAY
	case "trunk":
		return TRUNK
	case "primary":
		return PRIMARY
	case "secondary":
		return SECONDARY
	case "tertiary":
		return TERTIARY
	case "unclassified":
		return UNCLASSIFIED
	case "residential":
		return RESIDENTIAL
	case "service":
		return SERVICE
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk_link":
		return TRUNK_LINK
	case "primary_link":
		return PRIMARY_LINK
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary_link":
		return TERTIARY_LINK
	case "living_street":
		return LIVING_STREET
	case "road":
		return ROAD
	case "track":
		return TRACK
	default:
		return UNKNOWN
	}
}

// IsVehicularHighway reports whether a highway classification tag belongs to a
// road usable by response vehicles. pedestrian ways, steps, cycleways and the
// like are excluded from segment assembly.
func IsVehicularHighway(roadType string) bool {
	switch roadType {
	case "footway", "pedestrian", "steps", "path", "cycleway", "bridleway",
		"corridor", "elevator", "platform", "proposed", "construction":
		return false
	case "":
		return false
	default:
		return true
	}
}
