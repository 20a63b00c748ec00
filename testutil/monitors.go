package testutil

// ReadersWriters is a small monitor shared by the analysis tests. Its
// segments are enterReader[1..7] and exitReader[1..3].
const ReadersWriters = `
monitors:
  - name: ReadersWriters
    fields:
      - {name: readers, type: int}
      - {name: writerIn, type: boolean}
      - {name: log, type: "int[]"}
      - {name: instances, type: int, static: true}
    methods:
      - name: enterReader
        locals: {r0: ReadersWriters, z0: boolean, i0: int, i1: int}
        body:
          - {text: "r0 := @this", defs: [r0], uses: [this], identity: true}
          - {text: "z0 = r0.waituntil$pred1()", defs: [z0], uses: [r0], predicate: true}
          - {text: "waituntil(z0)", uses: [z0], waituntil: true}
          - {text: "i0 = r0.readers", defs: [i0], uses: [r0.readers]}
          - {text: "i1 = i0 + 1", defs: [i1], uses: [i0, "1"]}
          - {text: "r0.readers = i1", defs: [r0.readers], uses: [i1]}
          - {text: "r0.log[i1] = i0", defs: ["r0.log[i1]"], uses: [i0]}
          - {text: "return", return: true}
      - name: exitReader
        locals: {r0: ReadersWriters, i0: int}
        body:
          - {text: "r0 := @this", defs: [r0], uses: [this], identity: true}
          - {label: test, text: "if r0.readers <= 0 goto end", uses: [r0.readers], goto: [end], cond: true}
          - {text: "r0.readers = r0.readers - 1", defs: [r0.readers], uses: [r0.readers]}
          - {label: end, text: "return", return: true}
      - name: count
        static: true
        locals: {i0: int}
        body:
          - {text: "i0 = ReadersWriters::instances", defs: [i0], uses: ["ReadersWriters::instances"]}
          - {text: "return i0", uses: [i0], return: true}
`
