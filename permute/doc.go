// Package permute applies permutations and forwarding maps to sequences in
// place, and erases sets of elements in a single linear pass.
//
// Two index conventions are used throughout and must not be confused:
//
//   - Push (Apply): perm[i] is the FINAL position of the element currently at
//     i. Elements are relocated by cycle-following swaps.
//   - Pull (Remap): fwd[old] is the NEW index of what used to live at old.
//     A second, independent sequence whose VALUES reference the old index
//     space is rewritten value by value. This is how face→vertex lists follow
//     a vertex compaction.
//
// Every function validates its whole input before writing anything, so a
// returned error always means the destination is exactly as it was. The
// functions borrow their arguments for the duration of the call; callers must
// not touch them concurrently.
package permute
