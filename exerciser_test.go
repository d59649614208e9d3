package treap

import (
	"fmt"
	"sort"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/commands"
	"github.com/leanovate/gopter/gen"
	"github.com/stretchr/testify/assert"
)

// expected is the model the exerciser checks the tree against. want holds
// the result the last command should have produced, computed by NextState
// before the model is updated.
type expected struct {
	keys map[int]struct{}
	want bool
}

func (e *expected) sorted() []int {
	keys := make([]int, 0, len(e.keys))
	for k := range e.keys {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

type system struct {
	tree     *Treap[int]
	cmdCount int
}

const keyMax = 299

var (
	cmdCount  = 0
	maxHeight = 0
	debug     = false
)

func progress(i interface{}) {
	if debug {
		fmt.Printf("%v\n", i)
	}
}

func boolPostCondition(name string, state commands.State, result commands.Result) *gopter.PropResult {
	want := state.(*expected).want
	if result.(bool) != want {
		fmt.Printf("%s PostCondition: expected=%v actual=%v\n", name, want, result)
		return &gopter.PropResult{Status: gopter.PropFalse}
	}
	progress(name)
	return &gopter.PropResult{Status: gopter.PropTrue}
}

var SizeCommand = &commands.ProtoCommand{
	Name: "Size",
	RunFunc: func(s commands.SystemUnderTest) commands.Result {
		s.(*system).cmdCount++
		return s.(*system).tree.Size()
	},
	NextStateFunc:    func(state commands.State) commands.State { return state },
	PreConditionFunc: func(state commands.State) bool { return true },
	PostConditionFunc: func(state commands.State, result commands.Result) *gopter.PropResult {
		if len(state.(*expected).keys) != result.(int) {
			fmt.Printf("sizeCommandPostCondition: expected=%d, actual=%d\n", len(state.(*expected).keys), result.(int))
			return &gopter.PropResult{Status: gopter.PropFalse}
		}
		progress("Size")
		return &gopter.PropResult{Status: gopter.PropTrue}
	},
}

type checked struct {
	err  error
	keys []int
}

var CheckCommand = &commands.ProtoCommand{
	Name: "Check",
	RunFunc: func(s commands.SystemUnderTest) commands.Result {
		tree := s.(*system).tree
		s.(*system).cmdCount++
		return checked{tree.check(), tree.keys()}
	},
	NextStateFunc:    func(state commands.State) commands.State { return state },
	PreConditionFunc: func(state commands.State) bool { return true },
	PostConditionFunc: func(state commands.State, result commands.Result) *gopter.PropResult {
		c := result.(checked)
		if c.err != nil {
			fmt.Printf("checkCommandPostCondition: %v\n", c.err)
			return &gopter.PropResult{Status: gopter.PropFalse}
		}
		wanted := state.(*expected).sorted()
		if !assert.ObjectsAreEqual(wanted, c.keys) {
			fmt.Printf("checkCommandPostCondition: expected keys %s actual %s",
				spew.Sdump(wanted), spew.Sdump(c.keys))
			return &gopter.PropResult{Status: gopter.PropFalse}
		}
		progress("Check")
		return &gopter.PropResult{Status: gopter.PropTrue}
	},
}

type insertCommand int

func (value insertCommand) Run(s commands.SystemUnderTest) commands.Result {
	s.(*system).cmdCount++
	return s.(*system).tree.Insert(int(value))
}

func (value insertCommand) NextState(state commands.State) commands.State {
	s := state.(*expected)
	_, present := s.keys[int(value)]
	s.want = !present
	s.keys[int(value)] = struct{}{}
	return s
}

func (value insertCommand) PreCondition(state commands.State) bool {
	return true
}

func (value insertCommand) PostCondition(state commands.State, result commands.Result) *gopter.PropResult {
	return boolPostCondition(value.String(), state, result)
}

func (value insertCommand) String() string {
	return fmt.Sprintf("Insert(%d)", int(value))
}

var genInsert = intCommandGen(
	func(value int) commands.Command { return insertCommand(value) },
	func(command interface{}) int { return int(command.(insertCommand)) })

type eraseCommand int

func (value eraseCommand) Run(s commands.SystemUnderTest) commands.Result {
	s.(*system).cmdCount++
	return s.(*system).tree.Erase(int(value))
}

func (value eraseCommand) NextState(state commands.State) commands.State {
	s := state.(*expected)
	_, present := s.keys[int(value)]
	s.want = present
	delete(s.keys, int(value))
	return s
}

func (value eraseCommand) PreCondition(state commands.State) bool {
	return true
}

func (value eraseCommand) PostCondition(state commands.State, result commands.Result) *gopter.PropResult {
	return boolPostCondition(value.String(), state, result)
}

func (value eraseCommand) String() string {
	return fmt.Sprintf("Erase(%d)", int(value))
}

var genErase = intCommandGen(
	func(value int) commands.Command { return eraseCommand(value) },
	func(command interface{}) int { return int(command.(eraseCommand)) })

// eraseNthCommand erases the nth smallest key, so it always hits.
type eraseNthCommand int

func (value eraseNthCommand) Run(s commands.SystemUnderTest) commands.Result {
	tree := s.(*system).tree
	keys := tree.keys()
	s.(*system).cmdCount++
	return tree.Erase(keys[int(value)])
}

func (value eraseNthCommand) NextState(state commands.State) commands.State {
	s := state.(*expected)
	keys := s.sorted()
	delete(s.keys, keys[int(value)])
	s.want = true
	return s
}

func (value eraseNthCommand) PreCondition(state commands.State) bool {
	return int(value) < len(state.(*expected).keys)
}

func (value eraseNthCommand) PostCondition(state commands.State, result commands.Result) *gopter.PropResult {
	return boolPostCondition(value.String(), state, result)
}

func (value eraseNthCommand) String() string {
	return fmt.Sprintf("EraseNth(%d)", int(value))
}

var genEraseNth = intCommandGen(
	func(value int) commands.Command { return eraseNthCommand(value) },
	func(command interface{}) int { return int(command.(eraseNthCommand)) })

type containsCommand int

func (value containsCommand) Run(s commands.SystemUnderTest) commands.Result {
	s.(*system).cmdCount++
	return s.(*system).tree.Contains(int(value))
}

func (value containsCommand) NextState(state commands.State) commands.State {
	s := state.(*expected)
	_, s.want = s.keys[int(value)]
	return s
}

func (value containsCommand) PreCondition(state commands.State) bool {
	return true
}

func (value containsCommand) PostCondition(state commands.State, result commands.Result) *gopter.PropResult {
	return boolPostCondition(value.String(), state, result)
}

func (value containsCommand) String() string {
	return fmt.Sprintf("Contains(%d)", int(value))
}

var genContains = intCommandGen(
	func(value int) commands.Command { return containsCommand(value) },
	func(command interface{}) int { return int(command.(containsCommand)) })

func intCommandGen(toCommand func(int) commands.Command, fromCommand func(interface{}) int) gopter.Gen {
	return gen.IntRange(0, keyMax).Map(func(value int) commands.Command {
		return toCommand(value)
	}).WithShrinker(func(v interface{}) gopter.Shrink {
		return gen.IntShrinker(fromCommand(v)).Map(func(value int) commands.Command {
			return toCommand(value)
		})
	})
}

var treapCommands = &commands.ProtoCommands{
	NewSystemUnderTestFunc: func(initialState commands.State) commands.SystemUnderTest {
		tree := newTestTree(uint64(len(initialState.(*expected).keys)))
		for key := range initialState.(*expected).keys {
			tree.Insert(key)
		}
		progress("NewSystem")
		return &system{tree, 0}
	},
	DestroySystemUnderTestFunc: func(s commands.SystemUnderTest) {
		tree := s.(*system).tree
		if h := tree.height(); h > maxHeight {
			maxHeight = h
		}
		cmdCount += s.(*system).cmdCount
	},
	InitialStateGen: gen.SliceOf(gen.IntRange(0, keyMax)).Map(func(keys []int) *expected {
		e := &expected{keys: make(map[int]struct{}, len(keys))}
		for _, k := range keys {
			e.keys[k] = struct{}{}
		}
		return e
	}),
	InitialPreConditionFunc: func(state commands.State) bool {
		_ = state.(*expected)
		return true
	},
	GenCommandFunc: func(state commands.State) gopter.Gen {
		return gen.Weighted(
			[]gen.WeightedGen{
				{Weight: 100, Gen: genInsert},
				{Weight: 100, Gen: genErase},
				{Weight: 50, Gen: genEraseNth},
				{Weight: 100, Gen: genContains},
				{Weight: 20, Gen: gen.Const(SizeCommand)},
				{Weight: 5, Gen: gen.Const(CheckCommand)},
			},
		)
	},
}

func TestExerciser(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	if !testing.Short() {
		parameters.MaxSize = 2048
	}
	properties := gopter.NewProperties(parameters)
	properties.Property("treap exerciser", commands.Prop(treapCommands))
	properties.TestingRun(t)
	if !t.Failed() {
		fmt.Printf("tallest tree: %d\n", maxHeight)
		fmt.Printf("successful commands: %d\n", cmdCount)
	}
}
