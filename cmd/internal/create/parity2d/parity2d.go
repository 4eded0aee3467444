package parity2d

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/nathanhack/fecsim/linearblock"
	"github.com/nathanhack/fecsim/linearblock/parity2d"
	"github.com/nathanhack/fecsim/packet"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	Rows    uint
	Cols    uint
	Threads uint
)

var Parity2DRun = func(cmd *cobra.Command, args []string) error {
	shape := parity2d.Shape{Rows: int(Rows), Cols: int(Cols)}
	if err := shape.Validate(); err != nil {
		return err
	}
	cmd.SilenceUsage = true

	return write(args[0], shape)
}

func write(filename string, shape parity2d.Shape) error {
	ecc := parity2d.New(shape)
	if !ecc.Validate() {
		return fmt.Errorf("unable to create a valid %v parity code", shape)
	}
	if err := check(shape, ecc); err != nil {
		return err
	}

	bs, err := json.Marshal(ecc)
	if err != nil {
		return fmt.Errorf("unable to serialize the %v parity code: %v", shape, err)
	}

	err = os.WriteFile(filename, bs, 0644)
	if err != nil {
		return fmt.Errorf("unable to write file: %v", err)
	}

	logrus.Infof("Created %v parity code: message %v bits, codeword %v bits, rate %0.04f",
		shape, ecc.MessageLength(), ecc.CodewordLength(), ecc.CodeRate())
	logrus.Debugf("Girth: %v", linearblock.Girth(context.Background(), ecc.H, int(Threads)))
	logrus.Debugf("Code: %v", ecc)
	return nil
}

// check makes sure ecc encodes every single bit block the way shape does and gives the
// message back when decoding.
func check(shape parity2d.Shape, ecc *linearblock.LinearBlock) error {
	for i := 0; i < shape.DataLen(); i++ {
		data := make(packet.Packet, shape.DataLen())
		data[i] = 1

		codeword := ecc.Encode(data.Sparse())
		expected := shape.Encode(data)
		if actual := packet.FromSparse(codeword); actual.HammingDistance(expected) != 0 {
			return fmt.Errorf("bit %v encodes to %v but the %v parity code expects %v", i, actual, shape, expected)
		}
		if !ecc.Syndrome(codeword).IsZero() {
			return fmt.Errorf("codeword of bit %v fails the parity checks", i)
		}
		if message := packet.FromSparse(ecc.Decode(codeword)); message.HammingDistance(data) != 0 {
			return fmt.Errorf("bit %v decodes to %v", i, message)
		}
	}
	return nil
}
