package osm

import "github.com/paulmach/osm"

// carHighways lists highway tag values accessible by car.
var carHighways = map[string]bool{
	"motorway":       true,
	"motorway_link":  true,
	"trunk":          true,
	"trunk_link":     true,
	"primary":        true,
	"primary_link":   true,
	"secondary":      true,
	"secondary_link": true,
	"tertiary":       true,
	"tertiary_link":  true,
	"unclassified":   true,
	"residential":    true,
	"living_street":  true,
	"service":        true,
}

// footHighways lists highway tag values walkable on foot.
var footHighways = map[string]bool{
	"primary":       true,
	"secondary":     true,
	"tertiary":      true,
	"unclassified":  true,
	"residential":   true,
	"living_street": true,
	"service":       true,
	"pedestrian":    true,
	"footway":       true,
	"path":          true,
	"steps":         true,
	"track":         true,
	"cycleway":      true,
}

// traversable reports whether the way can be used under profile.
func traversable(tags osm.Tags, profile Profile) bool {
	hw := tags.Find("highway")
	access := tags.Find("access")

	switch profile {
	case ProfileFoot:
		if !footHighways[hw] {
			return false
		}
		if foot := tags.Find("foot"); foot == "no" || foot == "private" {
			return false
		}
		if (access == "no" || access == "private") && tags.Find("foot") != "yes" {
			return false
		}
		return true

	default:
		if !carHighways[hw] {
			return false
		}
		// Area highways are plazas, not roads.
		if tags.Find("area") == "yes" {
			return false
		}
		if access == "no" || access == "private" {
			return false
		}
		return tags.Find("motor_vehicle") != "no"
	}
}

// directionFlags returns (forward, backward) for the way under profile.
// Pedestrians ignore vehicle oneway rules.
func directionFlags(tags osm.Tags, profile Profile) (forward, backward bool) {
	if profile == ProfileFoot {
		if tags.Find("oneway:foot") == "yes" {
			return true, false
		}
		return true, true
	}

	forward, backward = true, true

	hw := tags.Find("highway")
	if hw == "motorway" || hw == "motorway_link" || tags.Find("junction") == "roundabout" {
		backward = false
	}

	switch tags.Find("oneway") {
	case "yes", "true", "1":
		forward, backward = true, false
	case "-1", "reverse":
		forward, backward = false, true
	case "no":
		forward, backward = true, true
	case "reversible":
		// Time-dependent; not routable.
		forward, backward = false, false
	}

	return forward, backward
}
