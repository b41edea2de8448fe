package schema

import (
	"bytes"
	"io"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/ipfs/go-cid"
	ipld "github.com/ipld/go-ipld-prime"
	"github.com/ipld/go-ipld-prime/codec/dagcbor"
	"github.com/ipld/go-ipld-prime/codec/dagjson"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
	"github.com/ipld/go-ipld-prime/node/bindnode"
	"github.com/ipld/go-ipld-prime/schema"
	"golang.org/x/xerrors"

	"github.com/consensus-shipyard/subnet-actor/hierarchical"
)

// Linkproto is the default link prototype used for Checkpoints
// It uses the default CidBuilder for Filecoin (see abi)
var Linkproto = cidlink.LinkPrototype{
	Prefix: cid.Prefix{
		Version:  1,
		Codec:    abi.CidBuilder.GetCodec(),
		MhType:   abi.HashFunction,
		MhLength: 16,
	},
}

var (
	CheckpointSchema schema.Type
	// NoPreviousCheck is a work-around to avoid undefined CIDs,
	// that results in unexpected errors when marshalling.
	// This needs a fix in go-ipld-prime::bindnode
	NoPreviousCheck cid.Cid
)

func init() {
	CheckpointSchema = initCheckpointSchema()
	var err error
	NoPreviousCheck, err = abi.CidBuilder.Sum([]byte("nil"))
	if err != nil {
		panic(err)
	}
}

// ChildCheck links the checkpoint committed by a child subnet
// for the same period.
type ChildCheck struct {
	Source string
	Check  cid.Cid
}

// CrossMsgMeta aggregates the cross-net messages a checkpoint
// proposes for consumption.
//
// MsgsCid commits to the content of the message bundle, and
// StartNonce/Count delimit the contiguous nonce range being
// consumed from the pending queue.
type CrossMsgMeta struct {
	From       string
	To         string
	MsgsCid    []byte // NOTE: cid.Cid not supported by bindnode inside lists
	StartNonce int
	Count      int
	Value      string
}

// CheckData is the data included in a Checkpoint.
type CheckData struct {
	Source         string
	TipSet         []byte // NOTE: For simplicity we add TipSetKey. We could include full TipSet
	Epoch          int
	PrevCheckpoint cid.Cid
	Childs         []ChildCheck
	CrossMsgs      []CrossMsgMeta
}

// Checkpoint data structure
//
// - Data includes all the data for the checkpoint. The Cid of Data
// is what identifies a checkpoint uniquely.
// - Signature adds the signature from a miner. According to the verifier
// used for checkpoint this may be different things.
type Checkpoint struct {
	Data      CheckData
	Signature []byte
}

// initCheckpointType initializes the Checkpoint schema
func initCheckpointSchema() schema.Type {
	ts := schema.TypeSystem{}
	ts.Init()
	ts.Accumulate(schema.SpawnString("String"))
	ts.Accumulate(schema.SpawnInt("Int"))
	ts.Accumulate(schema.SpawnLink("Link"))
	ts.Accumulate(schema.SpawnBytes("Bytes"))

	ts.Accumulate(schema.SpawnStruct("ChildCheck",
		[]schema.StructField{
			schema.SpawnStructField("Source", "String", false, false),
			schema.SpawnStructField("Check", "Link", false, false),
		},
		schema.SpawnStructRepresentationMap(map[string]string{}),
	))
	ts.Accumulate(schema.SpawnStruct("CrossMsgMeta",
		[]schema.StructField{
			schema.SpawnStructField("From", "String", false, false),
			schema.SpawnStructField("To", "String", false, false),
			schema.SpawnStructField("MsgsCid", "Bytes", false, false),
			schema.SpawnStructField("StartNonce", "Int", false, false),
			schema.SpawnStructField("Count", "Int", false, false),
			schema.SpawnStructField("Value", "String", false, false),
		},
		schema.SpawnStructRepresentationMap(map[string]string{}),
	))
	ts.Accumulate(schema.SpawnStruct("CheckData",
		[]schema.StructField{
			schema.SpawnStructField("Source", "String", false, false),
			schema.SpawnStructField("TipSet", "Bytes", false, false),
			schema.SpawnStructField("Epoch", "Int", false, false),
			schema.SpawnStructField("PrevCheckpoint", "Link", false, false),
			schema.SpawnStructField("Childs", "List_ChildCheck", false, false),
			schema.SpawnStructField("CrossMsgs", "List_CrossMsgMeta", false, false),
		},
		schema.SpawnStructRepresentationMap(nil),
	))
	ts.Accumulate(schema.SpawnStruct("Checkpoint",
		[]schema.StructField{
			schema.SpawnStructField("Data", "CheckData", false, false),
			schema.SpawnStructField("Signature", "Bytes", false, false),
		},
		schema.SpawnStructRepresentationMap(nil),
	))
	ts.Accumulate(schema.SpawnList("List_String", "String", false))
	ts.Accumulate(schema.SpawnList("List_Link", "Link", false))
	ts.Accumulate(schema.SpawnList("List_ChildCheck", "ChildCheck", false))
	ts.Accumulate(schema.SpawnList("List_CrossMsgMeta", "CrossMsgMeta", false))

	return ts.TypeByName("Checkpoint")
}

// Dumb linksystem used to generate links
//
// This linksystem doesn't store anything, just computes the Cid
// for a node.
func noStoreLinkSystem() ipld.LinkSystem {
	lsys := cidlink.DefaultLinkSystem()
	lsys.StorageWriteOpener = func(lctx ipld.LinkContext) (io.Writer, ipld.BlockWriteCommitter, error) {
		buf := bytes.NewBuffer(nil)
		return buf, func(lnk ipld.Link) error {
			return nil
		}, nil
	}
	return lsys
}

// NewRawCheckpoint creates a checkpoint template to populate by the user.
//
// This is the template returned by the subnet actor for the validators to
// include the corresponding information and sign before submission.
func NewRawCheckpoint(source hierarchical.SubnetID, epoch abi.ChainEpoch) *Checkpoint {
	return &Checkpoint{
		Data: CheckData{
			Source:         source.String(),
			Epoch:          int(epoch),
			PrevCheckpoint: NoPreviousCheck,
		},
	}

}

func (c *Checkpoint) SetPrevious(cid cid.Cid) {
	c.Data.PrevCheckpoint = cid
}

func (c *Checkpoint) PreviousCheck() cid.Cid {
	return c.Data.PrevCheckpoint
}

func (c *Checkpoint) SetTipSet(b []byte) {
	c.Data.TipSet = b
}

func (c *Checkpoint) Source() hierarchical.SubnetID {
	return hierarchical.SubnetID(c.Data.Source)
}

func (c *Checkpoint) MarshalBinary() ([]byte, error) {
	node := bindnode.Wrap(c, CheckpointSchema)
	nodeRepr := node.Representation()
	var buf bytes.Buffer
	err := dagjson.Encode(nodeRepr, &buf)
	if err != nil {
		return nil, err
	}
	// TODO: Consider returning io.Writer
	return buf.Bytes(), nil
}

func (c *Checkpoint) UnmarshalBinary(b []byte) error {
	nb := bindnode.Prototype(c, CheckpointSchema).NewBuilder()
	err := dagjson.Decode(nb, bytes.NewReader(b))
	if err != nil {
		return err
	}
	n := bindnode.Unwrap(nb.Build())

	ch, ok := n.(*Checkpoint)
	if !ok {
		return xerrors.Errorf("Unmarshalled node not of type Checkpoint")
	}
	*c = *ch
	return nil
}

func (c *Checkpoint) MarshalCBOR(w io.Writer) error {
	node := bindnode.Wrap(c, CheckpointSchema)
	nodeRepr := node.Representation()
	err := dagcbor.Encode(nodeRepr, w)
	if err != nil {
		return err
	}
	return nil
}

func (c *Checkpoint) UnmarshalCBOR(r io.Reader) error {
	nb := bindnode.Prototype(c, CheckpointSchema).NewBuilder()
	err := dagcbor.Decode(nb, r)
	if err != nil {
		return err
	}
	n := bindnode.Unwrap(nb.Build())

	ch, ok := n.(*Checkpoint)
	if !ok {
		return xerrors.Errorf("Unmarshalled node not of type Checkpoint")
	}
	*c = *ch
	return nil
}

func (c *Checkpoint) Equals(ch *Checkpoint) (bool, error) {
	c1, err := c.Cid()
	if err != nil {
		return false, err
	}
	c2, err := ch.Cid()
	if err != nil {
		return false, err
	}
	return c1 == c2, nil

}

// Cid returns the unique identifier for a checkpoint.
//
// It is computed by removing the signature from the checkpoint.
// The checkpoints are unique but validators need to include additional
// signature information.
func (c *Checkpoint) Cid() (cid.Cid, error) {
	// The Cid of a checkpoint is computed from the data.
	// The signature may differ according to the verifier used.
	ch := &Checkpoint{Data: c.Data}
	lsys := noStoreLinkSystem()
	lnk, err := lsys.ComputeLink(Linkproto, bindnode.Wrap(ch, CheckpointSchema))
	if err != nil {
		return cid.Undef, err
	}
	return lnk.(cidlink.Link).Cid, nil
}

// AddListChilds adds a list of child checkpoints into the checkpoint.
//
// The overwrite flag is set in AddChild so if a checkpoint for the
// source is encountered, the previous checkpoint is overwritten.
func (c *Checkpoint) AddListChilds(childs []*Checkpoint) {
	for _, ch := range childs {
		c.AddChild(ch, true) // nolint:errcheck
	}
}

// AddChild adds a single child to the checkpoint
//
// If the overwrite flag is set, when adding a checkpoint
// for an existing source, the checkpoint is overwritten.
// When the flag is not set, adding a checkpoint for an
// already existing source throws an error.
func (c *Checkpoint) AddChild(ch *Checkpoint, overwrite bool) error {
	cid, err := ch.Cid()
	if err != nil {
		return err
	}
	chcc := ChildCheck{ch.Data.Source, cid}
	ind := c.hasChild(chcc)
	if ind >= 0 {
		if overwrite {
			c.Data.Childs[ind] = chcc
			return nil
		}
		return xerrors.New("there is already a checkpoint for that source")
	}
	c.Data.Childs = append(c.Data.Childs, chcc)
	return nil
}

func (c *Checkpoint) hasChild(child ChildCheck) int {
	return c.HasChild(hierarchical.SubnetID(child.Source))
}

func (c *Checkpoint) HasChild(source hierarchical.SubnetID) int {
	for i, ch := range c.Data.Childs {
		if ch.Source == source.String() {
			return i
		}
	}
	return -1
}

func (c *Checkpoint) LenChilds() int {
	return len(c.Data.Childs)
}

func (c *Checkpoint) Epoch() abi.ChainEpoch {
	return abi.ChainEpoch(c.Data.Epoch)
}

// CrossMsgs returns the cross-net message metas aggregated in the
// checkpoint.
func (c *Checkpoint) CrossMsgs() []CrossMsgMeta {
	return c.Data.CrossMsgs
}

// CrossMsgMeta returns the metadata for messages from one subnet to
// another, if any, along with its index in the checkpoint.
func (c *Checkpoint) CrossMsgMeta(from, to hierarchical.SubnetID) (*CrossMsgMeta, int) {
	for i, m := range c.Data.CrossMsgs {
		if m.From == from.String() && m.To == to.String() {
			return &c.Data.CrossMsgs[i], i
		}
	}
	return nil, -1
}

// AppendMsgMeta adds a new msgMeta to the checkpoint, or overwrites
// the existing one for the same route if the bundle changed.
func (c *Checkpoint) AppendMsgMeta(meta *CrossMsgMeta) {
	_, i := c.CrossMsgMeta(hierarchical.SubnetID(meta.From), hierarchical.SubnetID(meta.To))
	if i >= 0 {
		if !bytes.Equal(c.Data.CrossMsgs[i].MsgsCid, meta.MsgsCid) {
			c.Data.CrossMsgs[i] = *meta
		}
		return
	}
	c.Data.CrossMsgs = append(c.Data.CrossMsgs, *meta)
}

// SetMsgMetaCid sets the cid of the message bundle for the meta at
// index i.
func (c *Checkpoint) SetMsgMetaCid(i int, cd cid.Cid) {
	c.Data.CrossMsgs[i].MsgsCid = cd.Bytes()
}

// NewCrossMsgMeta creates an empty meta for messages traveling between
// two subnets.
func NewCrossMsgMeta(from, to hierarchical.SubnetID) *CrossMsgMeta {
	return &CrossMsgMeta{
		From:  from.String(),
		To:    to.String(),
		Value: "0",
	}
}

func (cm *CrossMsgMeta) GetCid() (cid.Cid, error) {
	return cid.Cast(cm.MsgsCid)
}

func (cm *CrossMsgMeta) SetCid(c cid.Cid) {
	cm.MsgsCid = c.Bytes()
}

func (cm *CrossMsgMeta) GetValue() (abi.TokenAmount, error) {
	return big.FromString(cm.Value)
}

func (cm *CrossMsgMeta) AddValue(x abi.TokenAmount) error {
	v, err := cm.GetValue()
	if err != nil {
		return err
	}
	cm.Value = big.Add(v, x).String()
	return nil
}

func (cm *CrossMsgMeta) SubValue(x abi.TokenAmount) error {
	v, err := cm.GetValue()
	if err != nil {
		return err
	}
	cm.Value = big.Sub(v, x).String()
	return nil
}

func (cm *CrossMsgMeta) Equal(other *CrossMsgMeta) bool {
	return cm.From == other.From && cm.To == other.To &&
		bytes.Equal(cm.MsgsCid, other.MsgsCid) &&
		cm.StartNonce == other.StartNonce && cm.Count == other.Count
}
