package types

// CatalogUnit describes a unit kind that can be placed on a board.
// ImageName refers to an asset key owned by the renderer.
type CatalogUnit struct {
	Name      string `json:"name" yaml:"name"`
	ImageName string `json:"imageName" yaml:"imageName"`
	AC        int    `json:"ac" yaml:"ac"`
	Health    int    `json:"health" yaml:"health"`
	Movement  int    `json:"movement" yaml:"movement"`
}
