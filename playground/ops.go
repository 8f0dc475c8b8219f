package playground

import "github.com/kmatzen/BabylonPlusEmscriptenGLFW/bridge"

// Op names registered by every Context.
const (
	OpTransferFrame   = "TransferFrame"
	OpMoveUp          = "MoveUp"
	OpChangeBallSize  = "ChangeBallSize"
	OpChangeBallColor = "ChangeBallColor"
	OpSetBallVisible  = "SetBallVisible"
	OpSetFloorVisible = "SetFloorVisible"
)

// registerOps fills the registry with the transfer entry point and the scene mutators.
func (c *Context) registerOps() error {
	ops := []bridge.Op{
		{
			Name: OpTransferFrame,
			Doc:  "copy the last completed frame (RGBA8, bottom-left origin unless configured) into shared memory",
			Args: []bridge.Arg{{Name: "location", Kind: bridge.KindInt}, {Name: "capacity", Kind: bridge.KindInt}},
			Handler: func(args bridge.Args) (any, error) {
				return nil, c.Transfer(args.Int(0), args.Int(1))
			},
		},
		{
			Name: OpMoveUp,
			Doc:  "raise the ball by 0.05",
			Handler: func(bridge.Args) (any, error) {
				return nil, c.MoveUp()
			},
		},
		{
			Name: OpChangeBallSize,
			Doc:  "set the ball's uniform scale",
			Args: []bridge.Arg{{Name: "size", Kind: bridge.KindFloat}},
			Handler: func(args bridge.Args) (any, error) {
				return nil, c.ChangeBallSize(args.Float32(0))
			},
		},
		{
			Name: OpChangeBallColor,
			Doc:  "set the ball's diffuse color in [0, 1]; alpha is ignored",
			Args: []bridge.Arg{
				{Name: "r", Kind: bridge.KindFloat},
				{Name: "g", Kind: bridge.KindFloat},
				{Name: "b", Kind: bridge.KindFloat},
				{Name: "a", Kind: bridge.KindFloat},
			},
			Handler: func(args bridge.Args) (any, error) {
				return nil, c.ChangeBallColor(args.Float32(0), args.Float32(1), args.Float32(2), args.Float32(3))
			},
		},
		{
			Name: OpSetBallVisible,
			Doc:  "show or hide the ball",
			Args: []bridge.Arg{{Name: "visible", Kind: bridge.KindBool}},
			Handler: func(args bridge.Args) (any, error) {
				return nil, c.SetBallVisible(args.Bool(0))
			},
		},
		{
			Name: OpSetFloorVisible,
			Doc:  "show or hide the ground",
			Args: []bridge.Arg{{Name: "visible", Kind: bridge.KindBool}},
			Handler: func(args bridge.Args) (any, error) {
				return nil, c.SetFloorVisible(args.Bool(0))
			},
		},
	}

	for _, op := range ops {
		if err := c.registry.Register(op); err != nil {
			return err
		}
	}
	return nil
}
