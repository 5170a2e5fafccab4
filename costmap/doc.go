// Package costmap connects occupancy grids to the world frame.
//
// A Map couples a gridmap.GridMap with its Meta: cell size in metres, the
// world position of cell (0,0)'s outer corner and the grid dimensions.
// Grid row 0 is the bottom of the map (the smallest world y).
//
// Maps are built from a raw row-major occupancy array (FromOccupancy) or
// loaded from a map_server style YAML file that names a PGM image (Load).
package costmap
