package shell

import "os"

type Environment struct{}

func NewEnvironment() *Environment {
	return &Environment{}
}

func (this *Environment) LookupEnv(key string) (value string, set bool) {
	return os.LookupEnv(key)
}

// FakeEnvironment substitutes for the process environment in tests.
type FakeEnvironment struct {
	values map[string]string
}

func NewFakeEnvironment() *FakeEnvironment {
	return &FakeEnvironment{values: make(map[string]string)}
}

func (this *FakeEnvironment) Set(key, value string) {
	this.values[key] = value
}

func (this *FakeEnvironment) LookupEnv(key string) (value string, set bool) {
	value, set = this.values[key]
	return value, set
}
