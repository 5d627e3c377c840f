/*
Package domain contains the core model of epigraph.

It defines the entities produced by compiling a parameter set: the ordered
compartment list, the resolved transition list and the immutable Model that
bundles them. The package is kept free of I/O so that solvers, stores and
transports can all depend on it.

# Key Entities

  - Compartment: a named bucket of individuals addressed by its dense index.
  - Transition: a resolved directed edge (source index, destination index).
  - Model: the immutable snapshot shared read-only by downstream consumers.
  - BuildHooks: synchronous observability callbacks fired during compilation.
*/
package domain
